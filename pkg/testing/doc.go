// Package testing provides helpers for testing box layouts.
//
// # Quick Start
//
// Build a tester over a box collection, pump a render pass and inspect
// the backend calls it produced:
//
//	func TestGauge(t *testing.T) {
//	    tester := boxtest.NewBoxTester(t, boxes)
//	    tester.Pump()
//
//	    if tester.Calls()[0].Op != backend.OpRectangle {
//	        t.Error("expected the box background first")
//	    }
//	}
//
// # Snapshot Testing
//
// Capture and compare the call trace of a pass:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/gauge.snapshot.json")
//
// Update snapshots with:
//
//	BOXKIT_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import boxtest "github.com/go-drift/boxkit/pkg/testing"
package testing
