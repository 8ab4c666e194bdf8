package box

import (
	"fmt"
	"math"

	"github.com/go-drift/boxkit/pkg/rendering"
)

// Coloring selects how a value chooses its display colors. It is
// implemented by Thresholds, Interpolation and Slider only.
type Coloring interface {
	coloring()
	validate() error
}

// Threshold maps the open interval (Min, Max) to a color pair.
type Threshold struct {
	Min float32
	Max float32
	Bg  rendering.Color
	Fg  rendering.Color
}

// Matches reports whether v lies strictly inside the band.
func (t Threshold) Matches(v float32) bool {
	return t.Min < v && v < t.Max
}

// Thresholds is an ordered list of bands. When bands overlap the last
// matching entry wins, so higher priority bands go later.
type Thresholds []Threshold

// Interpolation blends the background between ColorMin at Min and ColorMax
// at Max.
type Interpolation struct {
	ColorMin rendering.Color
	ColorMax rendering.Color
	Min      float32
	Max      float32
}

// Anchor is the box edge a slider grows from.
type Anchor int

const (
	AnchorTop Anchor = iota
	AnchorBottom
	AnchorLeft
	AnchorRight
)

func (a Anchor) String() string {
	switch a {
	case AnchorTop:
		return "top"
	case AnchorBottom:
		return "bottom"
	case AnchorLeft:
		return "left"
	case AnchorRight:
		return "right"
	default:
		return fmt.Sprintf("Anchor(%d)", int(a))
	}
}

// ParseAnchor converts "top", "bottom", "left" or "right" to an Anchor.
func ParseAnchor(s string) (Anchor, error) {
	switch s {
	case "top":
		return AnchorTop, nil
	case "bottom":
		return AnchorBottom, nil
	case "left":
		return AnchorLeft, nil
	case "right":
		return AnchorRight, nil
	default:
		return 0, fmt.Errorf("unknown slider anchor %q", s)
	}
}

// Slider overlays a bar of Color inside the box, Margin pixels from every
// border, whose length follows the value between Min and Max.
type Slider struct {
	Color  rendering.Color
	Anchor Anchor
	Min    float32
	Max    float32
	Margin uint16
}

func (Thresholds) coloring()    {}
func (Interpolation) coloring() {}
func (Slider) coloring()        {}

func (ts Thresholds) validate() error {
	for i, t := range ts {
		if !(t.Min < t.Max) {
			return fmt.Errorf("threshold %d: min %v must be below max %v", i, t.Min, t.Max)
		}
	}
	return nil
}

func (in Interpolation) validate() error {
	if !(in.Min < in.Max) {
		return fmt.Errorf("interpolation: min %v must be below max %v", in.Min, in.Max)
	}
	return nil
}

func (s Slider) validate() error {
	if !(s.Min < s.Max) {
		return fmt.Errorf("slider: min %v must be below max %v", s.Min, s.Max)
	}
	if s.Anchor < AnchorTop || s.Anchor > AnchorRight {
		return fmt.Errorf("slider: invalid anchor %v", s.Anchor)
	}
	return nil
}

// Resolve returns the background and foreground colors for v, starting
// from the box defaults.
func Resolve(v *Value, defBg, defFg rendering.Color) (bg, fg rendering.Color) {
	bg, fg = defBg, defFg
	if v == nil {
		return bg, fg
	}
	switch c := deref(v.Coloring).(type) {
	case Thresholds:
		for _, t := range c {
			if t.Matches(v.Value) {
				bg, fg = t.Bg, t.Fg
			}
		}
	case Interpolation:
		bg = rendering.Lerp(c.ColorMin, c.ColorMax, fraction(v.Value, c.Min, c.Max))
	}
	return bg, fg
}

// SliderOf returns the slider coloring of v, if it has one.
func SliderOf(v *Value) (Slider, bool) {
	if v == nil {
		return Slider{}, false
	}
	s, ok := deref(v.Coloring).(Slider)
	return s, ok
}

// deref maps pointer variants onto their value form so callers only switch
// over values. Nil pointers become a nil Coloring.
func deref(c Coloring) Coloring {
	switch p := c.(type) {
	case *Thresholds:
		if p == nil {
			return nil
		}
		return *p
	case *Interpolation:
		if p == nil {
			return nil
		}
		return *p
	case *Slider:
		if p == nil {
			return nil
		}
		return *p
	}
	return c
}

// SliderBar returns the bar rectangle for v inside rect. The bar is empty at
// Min and covers the inset rect at Max.
func SliderBar(rect rendering.Rect, s Slider, v float32) rendering.Rect {
	inner := rect.Inset(s.Margin)
	t := fraction(v, s.Min, s.Max)
	switch s.Anchor {
	case AnchorTop:
		inner.H = scale(inner.H, t)
	case AnchorBottom:
		h := scale(inner.H, t)
		inner.Y += inner.H - h
		inner.H = h
	case AnchorLeft:
		inner.W = scale(inner.W, t)
	case AnchorRight:
		w := scale(inner.W, t)
		inner.X += inner.W - w
		inner.W = w
	}
	return inner
}

// fraction is the clamped position of v in [lo, hi]. A degenerate range
// acts as a step at hi.
func fraction(v, lo, hi float32) float64 {
	if math.IsNaN(float64(v)) {
		return 0
	}
	if !(lo < hi) {
		if v < hi {
			return 0
		}
		return 1
	}
	t := (float64(v) - float64(lo)) / (float64(hi) - float64(lo))
	return math.Min(math.Max(t, 0), 1)
}

func scale(extent uint16, t float64) uint16 {
	return uint16(math.Floor(float64(extent) * t))
}
