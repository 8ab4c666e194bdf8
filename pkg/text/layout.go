// Package text defines the boundary between box rendering and the glyph
// engine, and ships a default engine built on golang.org/x/image.
package text

import (
	"fmt"
	"image"

	"github.com/go-drift/boxkit/pkg/rendering"
)

// Align selects which part of the text sits on the anchor point.
type Align int

const (
	// AlignLeft starts the text at the anchor.
	AlignLeft Align = iota
	// AlignCenter centers the text on the anchor.
	AlignCenter
	// AlignRight ends the text at the anchor.
	AlignRight
)

// String returns a human-readable representation of the alignment.
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return fmt.Sprintf("Align(%d)", int(a))
	}
}

// ParseAlign converts "left", "center" or "right" to an Align. The empty
// string is left.
func ParseAlign(s string) (Align, error) {
	switch s {
	case "", "left":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	default:
		return 0, fmt.Errorf("unknown text alignment %q", s)
	}
}

// PixelSink receives single pixels. Every drawing backend is a PixelSink.
type PixelSink interface {
	DrawPixel(x, y int, c rendering.Color)
}

// Layout rasterizes aligned text through a PixelSink.
//
// Origin is the anchor point; its y coordinate is the top of the line box.
// Implementations call DrawPixel once per covered pixel, with the RGB of c
// and the glyph coverage as alpha. Size is a scale factor over the engine's
// base size.
type Layout interface {
	RenderAligned(dst PixelSink, origin image.Point, align Align, s string, c rendering.Color, size float32)
}
