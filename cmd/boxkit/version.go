package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/boxkit/cmd/boxkit/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "boxkit %s\ncommit: %s\nbuilt: %s\nlayout schema: %s\n", version, commit, date, config.SchemaMajor)
			return nil
		},
	}
}
