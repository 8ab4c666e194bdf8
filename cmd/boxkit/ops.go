package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-drift/boxkit/pkg/backend"
	"github.com/go-drift/boxkit/pkg/box"
	"github.com/go-drift/boxkit/pkg/render"
)

// passTrace is the JSON form of one traced render pass.
type passTrace struct {
	Pass  int            `json:"pass"`
	Stats render.Stats   `json:"stats"`
	Calls []backend.Call `json:"calls"`
}

// valueUpdate is a --set argument applied before every pass after the first.
type valueUpdate struct {
	id    uint16
	value float32
}

func parseUpdate(s string) (valueUpdate, error) {
	idStr, valStr, ok := strings.Cut(s, "=")
	if !ok {
		return valueUpdate{}, fmt.Errorf("invalid --set %q, want ID=VALUE", s)
	}
	id, err := strconv.ParseUint(strings.TrimSpace(idStr), 10, 16)
	if err != nil {
		return valueUpdate{}, fmt.Errorf("invalid --set id %q: %w", idStr, err)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(valStr), 32)
	if err != nil {
		return valueUpdate{}, fmt.Errorf("invalid --set value %q: %w", valStr, err)
	}
	return valueUpdate{id: uint16(id), value: float32(v)}, nil
}

func newOpsCmd(a *app) *cobra.Command {
	var (
		passes    int
		summary   bool
		optimized bool
		sets      []string
	)

	cmd := &cobra.Command{
		Use:   "ops LAYOUT",
		Short: "Print the backend calls of one or more render passes as JSON",
		Long: `ops renders a layout into a call recorder and prints every backend call.

With --passes N the layout is rendered N times. --set ID=VALUE changes a box
value before each pass after the first, which shows the dirty-box skipping
of optimized rendering.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passes < 1 {
				return fmt.Errorf("--passes must be at least 1")
			}
			updates := make([]valueUpdate, 0, len(sets))
			for _, s := range sets {
				u, err := parseUpdate(s)
				if err != nil {
					return err
				}
				updates = append(updates, u)
			}

			l, boxes, err := a.load(args[0])
			if err != nil {
				return err
			}
			engine, err := l.Engine()
			if err != nil {
				return err
			}
			opt := l.IsOptimized()
			if cmd.Flags().Changed("optimized") {
				opt = optimized
			}

			rec := &backend.Recorder{}
			r := render.New(rec, engine, render.WithOptimization(opt), render.WithLogger(a.log))
			traces := make([]passTrace, 0, passes)
			for i := 1; i <= passes; i++ {
				if i > 1 {
					if err := applyUpdates(boxes, updates); err != nil {
						return err
					}
				}
				rec.Reset()
				r.Render(boxes)
				calls := rec.Calls()
				if summary {
					calls = rec.Summary()
				}
				traces = append(traces, passTrace{Pass: i, Stats: r.Stats(), Calls: calls})
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(traces)
		},
	}

	cmd.Flags().IntVar(&passes, "passes", 1, "Number of render passes")
	cmd.Flags().BoolVar(&summary, "summary", false, "Fold runs of pixel calls into one entry")
	cmd.Flags().BoolVar(&optimized, "optimized", true, "Skip boxes that are not marked updated (overrides the layout)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set box ID to VALUE before later passes (ID=VALUE, repeatable)")

	return cmd
}

func applyUpdates(boxes box.Boxes, updates []valueUpdate) error {
	for _, u := range updates {
		b := boxes.Lookup(u.id)
		if b == nil {
			return fmt.Errorf("--set: no box with id %d", u.id)
		}
		b.SetValue(u.value)
	}
	return nil
}
