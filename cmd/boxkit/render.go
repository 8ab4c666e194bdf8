package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/go-drift/boxkit/pkg/backend"
	"github.com/go-drift/boxkit/pkg/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		out       string
		scale     int
		optimized bool
	)

	cmd := &cobra.Command{
		Use:   "render LAYOUT",
		Short: "Render a layout to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			fb := backend.NewFramebuffer(l.Width, l.Height, l.Clear())
			r := render.New(fb, engine, render.WithOptimization(opt), render.WithLogger(a.log))
			r.Render(boxes)

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := fb.WritePNG(f, scale); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			stats := r.Stats()
			a.log.Info().
				Str("output", out).
				Int("drawn", stats.Drawn).
				Int("failed", stats.Failed).
				Msg("rendered layout")
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "out.png", "PNG file to write")
	cmd.Flags().IntVar(&scale, "scale", 1, "Integer upscaling factor")
	cmd.Flags().BoolVar(&optimized, "optimized", true, "Skip boxes that are not marked updated (overrides the layout)")

	return cmd
}
