// Package uifont loads the embedded UI font once and hands out faces.
package uifont

import (
	"sync"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gg/text"
)

var (
	once   sync.Once
	source *text.FontSource
	err    error
)

// Face returns a Go Regular face of the given size.
func Face(size float64) (text.Face, error) {
	once.Do(func() {
		source, err = text.NewFontSource(goregular.TTF)
	})
	if err != nil {
		return nil, err
	}
	return source.Face(size), nil
}
