// Package box holds the declarative box model: rectangles with an optional
// static label and an optional numeric value colored by a strategy.
package box

import (
	stderrors "errors"
	"fmt"

	"github.com/go-drift/boxkit/pkg/rendering"
	"github.com/go-drift/boxkit/pkg/text"
)

// Label is static text drawn inside a box.
type Label struct {
	Text     string
	Pos      rendering.Coords
	FontSize float32
	Align    text.Align
}

// Value is a numeric reading drawn inside a box. The owning application
// may change Value between renders; see Box.SetValue.
type Value struct {
	Value    float32
	IsFloat  bool
	Pos      rendering.Coords
	FontSize float32
	Align    text.Align
	// Coloring is nil when the box defaults apply.
	Coloring Coloring
}

// Box is one rectangular region of the interface.
type Box struct {
	// ID identifies the box for Lookup. It should be unique within a
	// collection.
	ID uint16
	// Updated marks the box for the next optimized render pass.
	Updated   bool
	Rect      rendering.Rect
	DefaultBg rendering.Color
	DefaultFg rendering.Color
	Label     *Label
	Value     *Value
}

// Boxes is a caller-owned box collection, drawn in order.
type Boxes []*Box

var (
	ErrEmptyText   = stderrors.New("label text is empty")
	ErrFontSize    = stderrors.New("font size must be positive")
	ErrEmptyRect   = stderrors.New("rect has zero area")
	ErrOutsideRect = stderrors.New("position lies outside the rect")
)

// NewLabel builds a Label.
func NewLabel(s string, pos rendering.Coords, size float32, align text.Align) (*Label, error) {
	if s == "" {
		return nil, ErrEmptyText
	}
	if !(size > 0) {
		return nil, ErrFontSize
	}
	return &Label{Text: s, Pos: pos, FontSize: size, Align: align}, nil
}

// NewValue builds a Value. A nil coloring keeps the box defaults.
func NewValue(v float32, isFloat bool, pos rendering.Coords, size float32, align text.Align, c Coloring) (*Value, error) {
	if !(size > 0) {
		return nil, ErrFontSize
	}
	c = deref(c)
	if c != nil {
		if err := c.validate(); err != nil {
			return nil, err
		}
	}
	return &Value{
		Value:    v,
		IsFloat:  isFloat,
		Pos:      pos,
		FontSize: size,
		Align:    align,
		Coloring: c,
	}, nil
}

// SetValue stores a new reading and marks the box updated when it changed.
// It is a no-op on boxes without a value.
func (b *Box) SetValue(v float32) {
	if b.Value == nil || b.Value.Value == v {
		return
	}
	b.Value.Value = v
	b.Updated = true
}

// Validate checks the box geometry.
func (b *Box) Validate() error {
	if b.Rect.IsEmpty() {
		return fmt.Errorf("box %d: %w", b.ID, ErrEmptyRect)
	}
	if b.Label != nil && !b.Rect.Contains(b.Label.Pos) {
		return fmt.Errorf("box %d label: %w", b.ID, ErrOutsideRect)
	}
	if b.Value != nil && !b.Rect.Contains(b.Value.Pos) {
		return fmt.Errorf("box %d value: %w", b.ID, ErrOutsideRect)
	}
	return nil
}

// Lookup returns the first box with the given id, or nil. With duplicate
// ids the earliest box in collection order wins.
func Lookup(boxes Boxes, id uint16) *Box {
	for _, b := range boxes {
		if b != nil && b.ID == id {
			return b
		}
	}
	return nil
}

// Lookup is the method form of the package-level Lookup.
func (bs Boxes) Lookup(id uint16) *Box {
	return Lookup(bs, id)
}

// MarkAll sets Updated on every box, forcing a full optimized redraw.
func (bs Boxes) MarkAll() {
	for _, b := range bs {
		if b != nil {
			b.Updated = true
		}
	}
}

// Release drops every box's label and value. Calling it again is a no-op.
func (bs Boxes) Release() {
	for _, b := range bs {
		if b == nil {
			continue
		}
		b.Label = nil
		b.Value = nil
	}
}

// Duplicates returns ids that appear more than once, in first-seen order.
func (bs Boxes) Duplicates() []uint16 {
	seen := make(map[uint16]int, len(bs))
	var dups []uint16
	for _, b := range bs {
		if b == nil {
			continue
		}
		seen[b.ID]++
		if seen[b.ID] == 2 {
			dups = append(dups, b.ID)
		}
	}
	return dups
}
