package backend

import (
	"fmt"

	"github.com/go-drift/boxkit/pkg/rendering"
)

// Backend operation names used in recorded calls.
const (
	OpPixel     = "pixel"
	OpRectangle = "rectangle"
	OpClear     = "clear"
	// OpPixels is a run of consecutive pixel calls in a Summary.
	OpPixels = "pixels"
)

// Call is one recorded backend operation.
type Call struct {
	Op    string          `json:"op"`
	X     int             `json:"x,omitempty"`
	Y     int             `json:"y,omitempty"`
	W     int             `json:"w,omitempty"`
	H     int             `json:"h,omitempty"`
	Color rendering.Color `json:"color,omitempty"`
	// Count is the number of pixels folded into an OpPixels entry.
	Count int `json:"count,omitempty"`
}

func (c Call) String() string {
	switch c.Op {
	case OpPixel:
		return fmt.Sprintf("pixel(%d,%d %v)", c.X, c.Y, c.Color)
	case OpRectangle:
		return fmt.Sprintf("rectangle(%d,%d %dx%d %v)", c.X, c.Y, c.W, c.H, c.Color)
	case OpPixels:
		return fmt.Sprintf("pixels(%d)", c.Count)
	default:
		return c.Op
	}
}

// Recorder is a Backend that keeps every call in order.
type Recorder struct {
	calls []Call
}

func (r *Recorder) DrawPixel(x, y int, c rendering.Color) {
	r.calls = append(r.calls, Call{Op: OpPixel, X: x, Y: y, Color: c})
}

func (r *Recorder) DrawRectangle(x, y, w, h int, c rendering.Color) {
	r.calls = append(r.calls, Call{Op: OpRectangle, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) ClearScreen() {
	r.calls = append(r.calls, Call{Op: OpClear})
}

// Calls returns the recorded calls. A returned slice is not modified by
// later calls or by Reset.
func (r *Recorder) Calls() []Call {
	return r.calls[:len(r.calls):len(r.calls)]
}

// Len returns the number of recorded calls.
func (r *Recorder) Len() int {
	return len(r.calls)
}

// Reset discards the recorded calls. Slices returned by Calls keep their
// contents.
func (r *Recorder) Reset() {
	r.calls = nil
}

// Summary returns the calls with each run of consecutive pixel calls folded
// into one OpPixels entry.
func (r *Recorder) Summary() []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Op != OpPixel {
			out = append(out, c)
			continue
		}
		if n := len(out); n > 0 && out[n-1].Op == OpPixels {
			out[n-1].Count++
			continue
		}
		out = append(out, Call{Op: OpPixels, Count: 1})
	}
	return out
}
