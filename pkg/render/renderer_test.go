package render

import (
	"image"
	"reflect"
	"testing"

	"github.com/go-drift/boxkit/pkg/backend"
	"github.com/go-drift/boxkit/pkg/box"
	"github.com/go-drift/boxkit/pkg/errors"
	"github.com/go-drift/boxkit/pkg/rendering"
	"github.com/go-drift/boxkit/pkg/text"
)

type textCall struct {
	origin image.Point
	align  text.Align
	s      string
	c      rendering.Color
	size   float32
}

// stubLayout records text requests and marks each with a single pixel at
// the anchor so ordering shows up in the backend trace.
type stubLayout struct {
	calls []textCall
}

func (l *stubLayout) RenderAligned(dst text.PixelSink, origin image.Point, align text.Align, s string, c rendering.Color, size float32) {
	l.calls = append(l.calls, textCall{origin, align, s, c, size})
	dst.DrawPixel(origin.X, origin.Y, c)
}

func sampleBox() *box.Box {
	return &box.Box{
		ID:        1,
		Updated:   true,
		Rect:      rendering.Rect{X: 10, Y: 20, W: 100, H: 50},
		DefaultBg: 0xFF101010,
		DefaultFg: 0xFFF0F0F0,
		Value: &box.Value{
			Value:    45,
			Pos:      rendering.Coords{X: 50, Y: 5},
			FontSize: 2,
			Align:    text.AlignCenter,
			Coloring: box.Thresholds{
				{Min: 0, Max: 50, Bg: 0xFF0000AA, Fg: 0xFF0000BB},
				{Min: 40, Max: 100, Bg: 0xFF00AA00, Fg: 0xFF00BB00},
			},
		},
		Label: &box.Label{
			Text:     "TEMP",
			Pos:      rendering.Coords{X: 2, Y: 40},
			FontSize: 1,
			Align:    text.AlignLeft,
		},
	}
}

func TestRenderDrawSequence(t *testing.T) {
	rec := &backend.Recorder{}
	layout := &stubLayout{}
	r := New(rec, layout)

	b := sampleBox()
	r.Render(box.Boxes{b})

	want := []backend.Call{
		{Op: backend.OpRectangle, X: 10, Y: 20, W: 100, H: 50, Color: 0xFF00AA00},
		{Op: backend.OpPixel, X: 60, Y: 25, Color: 0xFF00BB00},
		{Op: backend.OpPixel, X: 12, Y: 60, Color: 0xFF00BB00},
	}
	if got := rec.Calls(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}

	wantText := []textCall{
		{image.Pt(60, 25), text.AlignCenter, "45", 0xFF00BB00, 2},
		{image.Pt(12, 60), text.AlignLeft, "TEMP", 0xFF00BB00, 1},
	}
	if !reflect.DeepEqual(layout.calls, wantText) {
		t.Errorf("text calls = %+v, want %+v", layout.calls, wantText)
	}
	if b.Updated {
		t.Error("optimized pass left the box marked updated")
	}
}

func TestRenderSkipsCleanBoxes(t *testing.T) {
	rec := &backend.Recorder{}
	layout := &stubLayout{}
	r := New(rec, layout, WithOptimization(true))

	b := sampleBox()
	b.Updated = false
	r.Render(box.Boxes{b})
	if rec.Len() != 0 || len(layout.calls) != 0 {
		t.Fatalf("clean box produced %d backend calls and %d text calls", rec.Len(), len(layout.calls))
	}
	if s := r.Stats(); s.Skipped != 1 || s.Drawn != 0 {
		t.Errorf("Stats() = %+v", s)
	}

	b.SetValue(80)
	r.Render(box.Boxes{b})
	calls := rec.Calls()
	if len(calls) != 3 || calls[0].Op != backend.OpRectangle {
		t.Fatalf("updated box calls = %v, want rectangle, value, label", calls)
	}
	if layout.calls[0].s != "80" {
		t.Errorf("value text = %q, want 80", layout.calls[0].s)
	}

	rec.Reset()
	r.Render(box.Boxes{b})
	if rec.Len() != 0 {
		t.Errorf("second pass redrew an unchanged box: %v", rec.Calls())
	}
}

func TestRenderUnoptimizedClearsAndRedraws(t *testing.T) {
	rec := &backend.Recorder{}
	r := New(rec, &stubLayout{}, WithOptimization(false))

	a, b := sampleBox(), sampleBox()
	a.Updated, b.Updated = false, false
	b.ID = 2
	r.Render(box.Boxes{a, b})

	calls := rec.Calls()
	if len(calls) != 7 {
		t.Fatalf("got %d calls, want clear + 2x3: %v", len(calls), calls)
	}
	if calls[0].Op != backend.OpClear {
		t.Errorf("first call = %v, want clear", calls[0])
	}
	for _, c := range calls[1:] {
		if c.Op == backend.OpClear {
			t.Errorf("clear issued more than once: %v", calls)
		}
	}
	if a.Updated || b.Updated {
		t.Error("unoptimized pass changed the updated flag")
	}
}

func TestRenderSliderOverlay(t *testing.T) {
	rec := &backend.Recorder{}
	r := New(rec, nil)

	b := &box.Box{
		Updated:   true,
		Rect:      rendering.Rect{X: 0, Y: 0, W: 40, H: 20},
		DefaultBg: rendering.ColorBlack,
		DefaultFg: rendering.ColorWhite,
		Value: &box.Value{
			Value:    10,
			FontSize: 1,
			Coloring: box.Slider{Color: rendering.ColorGreen, Anchor: box.AnchorLeft, Min: 0, Max: 10, Margin: 1},
		},
	}
	r.Render(box.Boxes{b})
	want := []backend.Call{
		{Op: backend.OpRectangle, W: 40, H: 20, Color: rendering.ColorBlack},
		{Op: backend.OpRectangle, X: 1, Y: 1, W: 38, H: 18, Color: rendering.ColorGreen},
	}
	if got := rec.Calls(); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}

	rec.Reset()
	b.SetValue(0)
	r.Render(box.Boxes{b})
	if got := rec.Calls(); len(got) != 1 {
		t.Errorf("empty slider bar was drawn: %v", got)
	}
}

func TestRenderInterpolationColors(t *testing.T) {
	rec := &backend.Recorder{}
	layout := &stubLayout{}
	r := New(rec, layout)

	b := &box.Box{
		Updated:   true,
		Rect:      rendering.Rect{W: 10, H: 10},
		DefaultFg: rendering.ColorWhite,
		Value: &box.Value{
			Value:    100,
			FontSize: 1,
			Coloring: box.Interpolation{ColorMin: rendering.ColorBlue, ColorMax: rendering.ColorRed, Min: 0, Max: 100},
		},
	}
	r.Render(box.Boxes{b})
	if got := rec.Calls()[0].Color; got != rendering.ColorRed {
		t.Errorf("background = %v, want red", got)
	}
	if got := layout.calls[0].c; got != rendering.ColorWhite {
		t.Errorf("foreground = %v, want default white", got)
	}
}

func TestRenderBoxWithoutParts(t *testing.T) {
	rec := &backend.Recorder{}
	layout := &stubLayout{}
	r := New(rec, layout)
	r.Render(box.Boxes{nil, {Updated: true, Rect: rendering.Rect{W: 3, H: 3}, DefaultBg: rendering.ColorRed}})
	if rec.Len() != 1 || len(layout.calls) != 0 {
		t.Errorf("bare box: %v, %d text calls", rec.Calls(), len(layout.calls))
	}
}

func TestRenderRecoversBackendPanic(t *testing.T) {
	var reported *errors.PanicError
	old := errors.DefaultHandler
	errors.SetHandler(panicHandler(func(err *errors.PanicError) { reported = err }))
	defer errors.SetHandler(old)

	drawn := 0
	b := backend.Funcs{Rectangle: func(x, y, w, h int, c rendering.Color) {
		if w == 13 {
			panic("dma timeout")
		}
		drawn++
	}}
	bad := &box.Box{ID: 4, Updated: true, Rect: rendering.Rect{W: 13, H: 1}}
	good := &box.Box{ID: 5, Updated: true, Rect: rendering.Rect{W: 2, H: 1}}

	r := New(b, nil)
	r.Render(box.Boxes{bad, good})

	if reported == nil || !reported.HasBox || reported.BoxID != 4 || reported.Value != "dma timeout" {
		t.Fatalf("reported = %+v, want panic for box 4", reported)
	}
	if !bad.Updated {
		t.Error("failed box should stay marked for retry")
	}
	if good.Updated || drawn != 1 {
		t.Errorf("following box not drawn: updated=%v drawn=%d", good.Updated, drawn)
	}
	if s := r.Stats(); s.Failed != 1 || s.Drawn != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestRenderNilBackend(t *testing.T) {
	b := sampleBox()
	New(nil, nil).Render(box.Boxes{b})
	if !b.Updated {
		t.Error("render without backend cleared the updated flag")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v       float32
		isFloat bool
		want    string
	}{
		{51, false, "51"},
		{51, true, "51.00"},
		{-3.7, false, "-3"},
		{3.999, false, "3"},
		{2.5, true, "2.50"},
		{0.125, true, "0.12"},
		{-0.5, false, "0"},
		{3e9, false, "2147483647"},
		{1e20, true, "10000000200408"},
		{-123456789012, true, "-123456790528."},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.v, tt.isFloat); got != tt.want {
			t.Errorf("FormatValue(%v, %v) = %q, want %q", tt.v, tt.isFloat, got, tt.want)
		}
	}
}

type panicHandler func(*errors.PanicError)

func (f panicHandler) HandleError(*errors.BoxError)     {}
func (f panicHandler) HandlePanic(err *errors.PanicError) { f(err) }
