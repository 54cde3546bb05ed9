// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package command

import "fmt"

// Action is a menu action.
type Action uint8

const (
	// OpenFile asks for a file and sends its content to the engine.
	OpenFile Action = iota + 1

	// ToggleWireframe flips the engine's wireframe mode.
	ToggleWireframe

	// OpenColorPicker opens the model colour dialog.
	OpenColorPicker
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case OpenFile:
		return "open_file"
	case ToggleWireframe:
		return "toggle_wireframe"
	case OpenColorPicker:
		return "open_color_picker"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// ParseAction returns the action named s.
func ParseAction(s string) (Action, error) {
	for _, a := range []Action{OpenFile, ToggleWireframe, OpenColorPicker} {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Item is one entry of a menu.
type Item struct {
	Label    string
	Shortcut string
	Action   Action
}

var items = map[MenuID][]Item{
	FileMenu: {
		{Label: "Open...", Shortcut: "Ctrl+O", Action: OpenFile},
	},
	DrawMenu: {
		{Label: "Toggle Wireframe", Shortcut: "W", Action: ToggleWireframe},
		{Label: "Model Color...", Shortcut: "C", Action: OpenColorPicker},
	},
}

// Items returns the entries of menu id.
func Items(id MenuID) []Item {
	return append([]Item(nil), items[id]...)
}

// MenuOf returns the menu that holds a.
func MenuOf(a Action) (MenuID, bool) {
	for id, list := range items {
		for _, it := range list {
			if it.Action == a {
				return id, true
			}
		}
	}
	return 0, false
}
