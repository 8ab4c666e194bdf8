// Package render draws a box collection through a Backend.
//
// A pass walks the boxes in collection order. For each drawn box it fills
// the rectangle with the resolved background, overlays a slider bar when the
// value uses one, then draws the value text and finally the label text in
// the resolved foreground color.
//
// In optimized mode (the default) boxes whose Updated flag is false are
// skipped entirely and the flag is cleared after a box is drawn. In
// unoptimized mode every pass starts with ClearScreen and redraws all boxes.
package render

import (
	"math"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/go-drift/boxkit/pkg/backend"
	"github.com/go-drift/boxkit/pkg/box"
	"github.com/go-drift/boxkit/pkg/errors"
	"github.com/go-drift/boxkit/pkg/text"
)

// MaxValueChars bounds the formatted value text.
const MaxValueChars = 14

// Option configures a Renderer.
type Option func(*Renderer)

// WithOptimization selects between redrawing only updated boxes (true) and
// clearing and redrawing everything on every pass (false).
func WithOptimization(on bool) Option {
	return func(r *Renderer) {
		r.optimized = on
	}
}

// WithLogger sets the logger used for per-pass debug output.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Renderer) {
		r.log = log
	}
}

// Stats describes the last render pass.
type Stats struct {
	Drawn   int `json:"drawn"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Renderer owns the drawing context of a render pass. It is not safe for
// concurrent use.
type Renderer struct {
	backend   backend.Backend
	layout    text.Layout
	optimized bool
	log       zerolog.Logger
	stats     Stats
}

// New returns a Renderer drawing through b with text laid out by layout.
// A nil layout draws no text.
func New(b backend.Backend, layout text.Layout, opts ...Option) *Renderer {
	r := &Renderer{
		backend:   b,
		layout:    layout,
		optimized: true,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Optimized reports whether dirty-box skipping is enabled.
func (r *Renderer) Optimized() bool {
	return r.optimized
}

// Stats returns the counters of the last pass.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Render runs one pass over boxes.
func (r *Renderer) Render(boxes box.Boxes) {
	r.stats = Stats{}
	if r.backend == nil {
		return
	}
	if !r.optimized {
		r.backend.ClearScreen()
	}
	for _, b := range boxes {
		if b == nil {
			continue
		}
		if r.optimized && !b.Updated {
			r.stats.Skipped++
			continue
		}
		if !r.drawBox(b) {
			r.stats.Failed++
			continue
		}
		r.stats.Drawn++
		if r.optimized {
			b.Updated = false
		}
	}
	r.log.Debug().
		Bool("optimized", r.optimized).
		Int("drawn", r.stats.Drawn).
		Int("skipped", r.stats.Skipped).
		Int("failed", r.stats.Failed).
		Msg("render pass")
}

// drawBox draws one box and reports whether it completed. A panic from the
// backend or layout is reported and leaves the box marked for a retry.
func (r *Renderer) drawBox(b *box.Box) (ok bool) {
	defer errors.RecoverWithCallback("render.Box", func(p *errors.PanicError) {
		p.BoxID, p.HasBox = b.ID, true
		ok = false
	})

	bg, fg := box.Resolve(b.Value, b.DefaultBg, b.DefaultFg)
	rect := b.Rect
	r.backend.DrawRectangle(int(rect.X), int(rect.Y), int(rect.W), int(rect.H), bg)

	if s, isSlider := box.SliderOf(b.Value); isSlider {
		bar := box.SliderBar(rect, s, b.Value.Value)
		if !bar.IsEmpty() {
			r.backend.DrawRectangle(int(bar.X), int(bar.Y), int(bar.W), int(bar.H), s.Color)
		}
	}

	if r.layout != nil {
		if v := b.Value; v != nil {
			r.layout.RenderAligned(r.backend, rect.At(v.Pos), v.Align, FormatValue(v.Value, v.IsFloat), fg, v.FontSize)
		}
		if l := b.Label; l != nil {
			r.layout.RenderAligned(r.backend, rect.At(l.Pos), l.Align, l.Text, fg, l.FontSize)
		}
	}
	return true
}

// FormatValue renders a reading as text: two decimals when isFloat, else
// the value truncated toward zero. The result is cut to MaxValueChars.
func FormatValue(v float32, isFloat bool) string {
	var s string
	if isFloat {
		s = strconv.FormatFloat(float64(v), 'f', 2, 64)
	} else {
		s = strconv.FormatInt(int64(truncInt32(v)), 10)
	}
	if len(s) > MaxValueChars {
		s = s[:MaxValueChars]
	}
	return s
}

// truncInt32 truncates toward zero and saturates outside the int32 range.
// NaN becomes 0.
func truncInt32(v float32) int32 {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}
