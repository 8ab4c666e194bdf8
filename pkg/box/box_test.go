package box

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/go-drift/boxkit/pkg/rendering"
	"github.com/go-drift/boxkit/pkg/text"
)

const (
	defBg = rendering.Color(0xFF111111)
	defFg = rendering.Color(0xFFEEEEEE)
)

func TestResolveThresholdsLastMatchWins(t *testing.T) {
	v := &Value{Value: 45, Coloring: Thresholds{
		{Min: 0, Max: 50, Bg: 0xFF0000AA, Fg: 0xFF0000BB},
		{Min: 40, Max: 100, Bg: 0xFF00AA00, Fg: 0xFF00BB00},
	}}
	bg, fg := Resolve(v, defBg, defFg)
	if bg != 0xFF00AA00 || fg != 0xFF00BB00 {
		t.Errorf("Resolve = (%v, %v), want the later band", bg, fg)
	}
}

func TestResolveThresholdsBoundariesExclusive(t *testing.T) {
	bands := Thresholds{{Min: 10, Max: 20, Bg: rendering.ColorRed, Fg: rendering.ColorBlue}}
	tests := []struct {
		value   float32
		matched bool
	}{
		{10, false},
		{20, false},
		{10.5, true},
		{19.99, true},
		{5, false},
		{float32(math.NaN()), false},
	}
	for _, tt := range tests {
		bg, fg := Resolve(&Value{Value: tt.value, Coloring: bands}, defBg, defFg)
		matched := bg == rendering.ColorRed && fg == rendering.ColorBlue
		if matched != tt.matched {
			t.Errorf("value %v: matched = %v, want %v", tt.value, matched, tt.matched)
		}
		if !matched && (bg != defBg || fg != defFg) {
			t.Errorf("value %v: unmatched should keep defaults, got (%v, %v)", tt.value, bg, fg)
		}
	}
}

func TestResolveDefaults(t *testing.T) {
	if bg, fg := Resolve(nil, defBg, defFg); bg != defBg || fg != defFg {
		t.Errorf("Resolve(nil) = (%v, %v)", bg, fg)
	}
	if bg, fg := Resolve(&Value{Value: 3}, defBg, defFg); bg != defBg || fg != defFg {
		t.Errorf("Resolve(no coloring) = (%v, %v)", bg, fg)
	}
	var nilBands *Thresholds
	if bg, fg := Resolve(&Value{Value: 3, Coloring: nilBands}, defBg, defFg); bg != defBg || fg != defFg {
		t.Errorf("Resolve(nil pointer coloring) = (%v, %v)", bg, fg)
	}
}

func TestResolveInterpolation(t *testing.T) {
	in := Interpolation{ColorMin: 0xFF000000, ColorMax: 0xFFFF0000, Min: 0, Max: 100}
	tests := []struct {
		value float32
		want  rendering.Color
	}{
		{-10, 0xFF000000},
		{0, 0xFF000000},
		{50, 0xFF800000},
		{100, 0xFFFF0000},
		{250, 0xFFFF0000},
	}
	for _, tt := range tests {
		bg, fg := Resolve(&Value{Value: tt.value, Coloring: in}, defBg, defFg)
		if bg != tt.want {
			t.Errorf("value %v: bg = %v, want %v", tt.value, bg, tt.want)
		}
		if fg != defFg {
			t.Errorf("value %v: interpolation changed fg to %v", tt.value, fg)
		}
	}
}

func TestResolveInterpolationPointer(t *testing.T) {
	in := &Interpolation{ColorMin: 0xFF000000, ColorMax: 0xFF0000FF, Min: 0, Max: 1}
	bg, _ := Resolve(&Value{Value: 1, Coloring: in}, defBg, defFg)
	if bg != 0xFF0000FF {
		t.Errorf("bg = %v, want 0xFF0000FF", bg)
	}
}

func TestResolveSliderKeepsDefaults(t *testing.T) {
	s := Slider{Color: rendering.ColorGreen, Min: 0, Max: 10}
	bg, fg := Resolve(&Value{Value: 5, Coloring: s}, defBg, defFg)
	if bg != defBg || fg != defFg {
		t.Errorf("slider Resolve = (%v, %v), want defaults", bg, fg)
	}
}

func TestSliderBar(t *testing.T) {
	rect := rendering.Rect{X: 10, Y: 20, W: 100, H: 50}
	tests := []struct {
		name   string
		anchor Anchor
		value  float32
		want   rendering.Rect
	}{
		{"left at min", AnchorLeft, 0, rendering.Rect{X: 12, Y: 22, W: 0, H: 46}},
		{"left at max", AnchorLeft, 10, rendering.Rect{X: 12, Y: 22, W: 96, H: 46}},
		{"left half", AnchorLeft, 5, rendering.Rect{X: 12, Y: 22, W: 48, H: 46}},
		{"right half", AnchorRight, 5, rendering.Rect{X: 60, Y: 22, W: 48, H: 46}},
		{"top half", AnchorTop, 5, rendering.Rect{X: 12, Y: 22, W: 96, H: 23}},
		{"bottom half", AnchorBottom, 5, rendering.Rect{X: 12, Y: 45, W: 96, H: 23}},
		{"bottom at max", AnchorBottom, 10, rendering.Rect{X: 12, Y: 22, W: 96, H: 46}},
		{"below min clamps", AnchorTop, -4, rendering.Rect{X: 12, Y: 22, W: 96, H: 0}},
		{"above max clamps", AnchorRight, 99, rendering.Rect{X: 12, Y: 22, W: 96, H: 46}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Slider{Anchor: tt.anchor, Min: 0, Max: 10, Margin: 2}
			if got := SliderBar(rect, s, tt.value); got != tt.want {
				t.Errorf("SliderBar = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSliderBarMarginLargerThanBox(t *testing.T) {
	got := SliderBar(rendering.Rect{X: 0, Y: 0, W: 4, H: 4}, Slider{Min: 0, Max: 1, Margin: 5}, 1)
	if !got.IsEmpty() {
		t.Errorf("SliderBar = %+v, want empty", got)
	}
}

func TestSliderOf(t *testing.T) {
	if _, ok := SliderOf(nil); ok {
		t.Error("SliderOf(nil) reported a slider")
	}
	if _, ok := SliderOf(&Value{Coloring: Thresholds{}}); ok {
		t.Error("SliderOf(thresholds) reported a slider")
	}
	s, ok := SliderOf(&Value{Coloring: &Slider{Color: rendering.ColorRed, Max: 1}})
	if !ok || s.Color != rendering.ColorRed {
		t.Errorf("SliderOf(*Slider) = %+v, %v", s, ok)
	}
}

func TestNewLabel(t *testing.T) {
	l, err := NewLabel("RPM", rendering.Coords{X: 5, Y: 6}, 1.5, text.AlignCenter)
	if err != nil {
		t.Fatalf("NewLabel: %v", err)
	}
	if l.Text != "RPM" || l.Pos.X != 5 || l.FontSize != 1.5 || l.Align != text.AlignCenter {
		t.Errorf("NewLabel = %+v", l)
	}

	if l, err := NewLabel("", rendering.Coords{}, 1, text.AlignLeft); l != nil || !stderrors.Is(err, ErrEmptyText) {
		t.Errorf("empty text: got %v, %v", l, err)
	}
	if l, err := NewLabel("x", rendering.Coords{}, 0, text.AlignLeft); l != nil || !stderrors.Is(err, ErrFontSize) {
		t.Errorf("zero size: got %v, %v", l, err)
	}
}

func TestNewValue(t *testing.T) {
	tests := []struct {
		name     string
		size     float32
		coloring Coloring
		wantErr  bool
	}{
		{"no coloring", 1, nil, false},
		{"thresholds", 1, Thresholds{{Min: 0, Max: 1}}, false},
		{"inverted threshold", 1, Thresholds{{Min: 2, Max: 1}}, true},
		{"interpolation", 1, Interpolation{Min: 0, Max: 1}, false},
		{"flat interpolation", 1, Interpolation{Min: 1, Max: 1}, true},
		{"slider", 1, &Slider{Min: 0, Max: 1, Anchor: AnchorBottom}, false},
		{"slider bad anchor", 1, Slider{Min: 0, Max: 1, Anchor: Anchor(9)}, true},
		{"negative size", -1, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewValue(3, true, rendering.Coords{}, tt.size, text.AlignRight, tt.coloring)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewValue error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && v != nil {
				t.Error("failed NewValue returned a value")
			}
			if !tt.wantErr && (v.Value != 3 || !v.IsFloat || v.Align != text.AlignRight) {
				t.Errorf("NewValue = %+v", v)
			}
		})
	}
}

func TestNewValueStoresPointerColoringByValue(t *testing.T) {
	s := &Slider{Min: 0, Max: 1}
	v, err := NewValue(0, false, rendering.Coords{}, 1, text.AlignLeft, s)
	if err != nil {
		t.Fatalf("NewValue: %v", err)
	}
	if _, ok := v.Coloring.(Slider); !ok {
		t.Errorf("Coloring = %T, want Slider", v.Coloring)
	}
}

func TestLookup(t *testing.T) {
	first := &Box{ID: 2}
	boxes := Boxes{{ID: 1}, first, {ID: 2}, nil, {ID: 3}}

	if got := Lookup(boxes, 2); got != first {
		t.Errorf("Lookup(2) = %p, want first match %p", got, first)
	}
	if got := boxes.Lookup(3); got == nil || got.ID != 3 {
		t.Errorf("Lookup(3) = %+v", got)
	}
	if got := Lookup(boxes, 9); got != nil {
		t.Errorf("Lookup(9) = %+v, want nil", got)
	}
	if got := boxes.Duplicates(); len(got) != 1 || got[0] != 2 {
		t.Errorf("Duplicates() = %v, want [2]", got)
	}
}

func TestReleaseTwice(t *testing.T) {
	boxes := Boxes{
		{ID: 1, Label: &Label{Text: "a"}, Value: &Value{}},
		{ID: 2},
		nil,
	}
	boxes.Release()
	boxes.Release()
	for _, b := range boxes {
		if b != nil && (b.Label != nil || b.Value != nil) {
			t.Errorf("box %d still holds parts after Release", b.ID)
		}
	}
}

func TestSetValue(t *testing.T) {
	b := &Box{Value: &Value{Value: 1}}
	b.SetValue(1)
	if b.Updated {
		t.Error("unchanged value marked the box updated")
	}
	b.SetValue(2)
	if !b.Updated || b.Value.Value != 2 {
		t.Errorf("SetValue(2): updated=%v value=%v", b.Updated, b.Value.Value)
	}

	empty := &Box{}
	empty.SetValue(5)
	if empty.Updated {
		t.Error("SetValue on a box without value marked it updated")
	}
}

func TestMarkAll(t *testing.T) {
	boxes := Boxes{{ID: 1}, nil, {ID: 2, Updated: true}}
	boxes.MarkAll()
	for _, b := range boxes {
		if b != nil && !b.Updated {
			t.Errorf("box %d not marked", b.ID)
		}
	}
}

func TestValidate(t *testing.T) {
	rect := rendering.Rect{X: 0, Y: 0, W: 100, H: 50}
	tests := []struct {
		name string
		box  Box
		want error
	}{
		{"ok", Box{Rect: rect, Label: &Label{Pos: rendering.Coords{X: 50, Y: 10}}}, nil},
		{"empty rect", Box{Rect: rendering.Rect{W: 0, H: 10}}, ErrEmptyRect},
		{"label outside", Box{Rect: rect, Label: &Label{Pos: rendering.Coords{X: 101}}}, ErrOutsideRect},
		{"value outside", Box{Rect: rect, Value: &Value{Pos: rendering.Coords{Y: 51}}}, ErrOutsideRect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.box.Validate()
			if tt.want == nil && err != nil {
				t.Fatalf("Validate() = %v", err)
			}
			if tt.want != nil && !stderrors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
