package rendering

import (
	"image"
	"math"
)

// Coords is a pixel offset relative to a box origin.
type Coords struct {
	X uint16
	Y uint16
}

// Rect is a box footprint in unsigned pixel coordinates.
type Rect struct {
	X uint16
	Y uint16
	W uint16
	H uint16
}

// IsEmpty reports whether the rectangle has zero area.
func (r Rect) IsEmpty() bool {
	return r.W == 0 || r.H == 0
}

// At returns the absolute point for an offset inside the rectangle.
func (r Rect) At(c Coords) image.Point {
	return image.Point{X: int(r.X) + int(c.X), Y: int(r.Y) + int(c.Y)}
}

// Contains reports whether the offset lies within the rectangle's extent.
func (r Rect) Contains(c Coords) bool {
	return c.X <= r.W && c.Y <= r.H
}

// Inset shrinks the rectangle by m on every side. The result never has a
// negative extent and its origin saturates at the coordinate limit.
func (r Rect) Inset(m uint16) Rect {
	inner := Rect{X: saturate(int(r.X) + int(m)), Y: saturate(int(r.Y) + int(m))}
	if 2*int(m) < int(r.W) {
		inner.W = r.W - 2*m
	}
	if 2*int(m) < int(r.H) {
		inner.H = r.H - 2*m
	}
	return inner
}

func saturate(v int) uint16 {
	return uint16(min(v, math.MaxUint16))
}

// Image returns the rectangle as an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.W), int(r.Y)+int(r.H))
}
