package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate LAYOUT...",
		Short: "Check layout files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, path := range args {
				l, boxes, err := a.load(path)
				if err != nil {
					a.log.Error().Err(err).Str("layout", path).Msg("invalid layout")
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d boxes on %dx%d (schema %s)\n", path, len(boxes), l.Width, l.Height, l.Schema)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d layouts invalid", failed, len(args))
			}
			return nil
		},
	}
}
