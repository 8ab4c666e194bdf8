// Package backend defines the drawing capability set boxes are rendered
// through, and ships software implementations of it.
package backend

import "github.com/go-drift/boxkit/pkg/rendering"

// Backend is the platform drawing surface. Calls are assumed to succeed.
type Backend interface {
	// DrawPixel plots one pixel. The color alpha carries glyph coverage.
	DrawPixel(x, y int, c rendering.Color)
	// DrawRectangle fills a rectangle. Hardware targets may accelerate it.
	DrawRectangle(x, y, w, h int, c rendering.Color)
	// ClearScreen resets the whole surface to the platform clear color.
	// It is only used by unoptimized render passes.
	ClearScreen()
}

// Funcs adapts three plain functions to a Backend. Nil fields are no-ops.
type Funcs struct {
	Pixel     func(x, y int, c rendering.Color)
	Rectangle func(x, y, w, h int, c rendering.Color)
	Clear     func()
}

func (f Funcs) DrawPixel(x, y int, c rendering.Color) {
	if f.Pixel != nil {
		f.Pixel(x, y, c)
	}
}

func (f Funcs) DrawRectangle(x, y, w, h int, c rendering.Color) {
	if f.Rectangle != nil {
		f.Rectangle(x, y, w, h, c)
	}
}

func (f Funcs) ClearScreen() {
	if f.Clear != nil {
		f.Clear()
	}
}
