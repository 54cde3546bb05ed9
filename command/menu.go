// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"

	"github.com/gogpu/enginehost/surface"
)

// MenuID names a menu in the menu bar.
type MenuID uint8

const (
	// FileMenu holds file actions.
	FileMenu MenuID = iota

	// DrawMenu holds rendering actions.
	DrawMenu

	numMenus
)

// Menus lists every menu in bar order.
var Menus = []MenuID{FileMenu, DrawMenu}

// String returns the menu title.
func (id MenuID) String() string {
	switch id {
	case FileMenu:
		return "File"
	case DrawMenu:
		return "Draw"
	default:
		return fmt.Sprintf("menu(%d)", uint8(id))
	}
}

// Valid reports whether id names a known menu.
func (id MenuID) Valid() bool { return id < numMenus }

type menu struct {
	anchor surface.Point
	open   bool
}

// MenuState tracks which menu is open and where it is anchored.
// At most one menu in the group is open at a time.
//
// The zero value has every menu closed.
type MenuState struct {
	menus [numMenus]menu
}

// Open opens id at anchor and closes any other open menu.
func (s *MenuState) Open(id MenuID, anchor surface.Point) {
	if !id.Valid() {
		return
	}
	s.CloseAll()
	s.menus[id] = menu{anchor: anchor, open: true}
}

// Close closes id. Closing a closed menu is a no-op.
// It reports whether the menu was open.
func (s *MenuState) Close(id MenuID) bool {
	if !id.Valid() || !s.menus[id].open {
		return false
	}
	s.menus[id].open = false
	return true
}

// CloseAll closes every menu.
func (s *MenuState) CloseAll() {
	for i := range s.menus {
		s.menus[i].open = false
	}
}

// Toggle opens id at anchor if it is closed, otherwise closes it.
func (s *MenuState) Toggle(id MenuID, anchor surface.Point) {
	if s.IsOpen(id) {
		s.Close(id)
		return
	}
	s.Open(id, anchor)
}

// IsOpen reports whether id is open.
func (s *MenuState) IsOpen(id MenuID) bool {
	return id.Valid() && s.menus[id].open
}

// Anchor returns where id was last opened.
func (s *MenuState) Anchor(id MenuID) surface.Point {
	if !id.Valid() {
		return surface.Point{}
	}
	return s.menus[id].anchor
}

// OpenMenu returns the open menu, if any.
func (s *MenuState) OpenMenu() (MenuID, bool) {
	for i, m := range s.menus {
		if m.open {
			return MenuID(i), true
		}
	}
	return 0, false
}
