package testing

import (
	"github.com/go-drift/boxkit/pkg/backend"
	"github.com/go-drift/boxkit/pkg/box"
	"github.com/go-drift/boxkit/pkg/render"
	"github.com/go-drift/boxkit/pkg/text"
)

// BoxTester renders a box collection into a call recorder.
type BoxTester struct {
	t        TestingT
	boxes    box.Boxes
	recorder *backend.Recorder
	renderer *render.Renderer
	passes   int
}

// NewBoxTester creates a tester using the default text engine and
// optimized rendering. Options are passed to the renderer.
func NewBoxTester(t TestingT, boxes box.Boxes, opts ...render.Option) *BoxTester {
	return NewBoxTesterWithLayout(t, boxes, text.NewEngine(), opts...)
}

// NewBoxTesterWithLayout creates a tester with a specific text layout.
func NewBoxTesterWithLayout(t TestingT, boxes box.Boxes, layout text.Layout, opts ...render.Option) *BoxTester {
	rec := &backend.Recorder{}
	return &BoxTester{
		t:        t,
		boxes:    boxes,
		recorder: rec,
		renderer: render.New(rec, layout, opts...),
	}
}

// Boxes returns the collection under test.
func (bt *BoxTester) Boxes() box.Boxes {
	return bt.boxes
}

// Box returns the box with the given id, failing the test if it is missing.
func (bt *BoxTester) Box(id uint16) *box.Box {
	bt.t.Helper()
	b := bt.boxes.Lookup(id)
	if b == nil {
		bt.t.Fatalf("no box with id %d", id)
	}
	return b
}

// Pump discards previous calls and runs one render pass.
func (bt *BoxTester) Pump() {
	bt.recorder.Reset()
	bt.renderer.Render(bt.boxes)
	bt.passes++
}

// Passes returns the number of passes pumped so far.
func (bt *BoxTester) Passes() int {
	return bt.passes
}

// Calls returns the backend calls of the last pass.
func (bt *BoxTester) Calls() []backend.Call {
	return bt.recorder.Calls()
}

// Stats returns the renderer counters of the last pass.
func (bt *BoxTester) Stats() render.Stats {
	return bt.renderer.Stats()
}
