package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/go-drift/boxkit/cmd/boxkit/internal/config"
	"github.com/go-drift/boxkit/cmd/boxkit/internal/logger"
	"github.com/go-drift/boxkit/pkg/box"
	"github.com/go-drift/boxkit/pkg/errors"
)

type rootFlags struct {
	verbose  bool
	jsonLogs bool
}

// app is the state shared by all subcommands.
type app struct {
	flags rootFlags
	log   zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "boxkit",
		Short: "Render box layouts for small displays",
		Long: `boxkit draws declarative box layouts: rectangles with an optional label
and a numeric value whose colors follow thresholds, an interpolation or a
slider bar.

Layouts are YAML files:

  schema: v3.0.0
  width: 320
  height: 240
  boxes:
    - id: 1
      rect: {x: 0, y: 0, w: 160, h: 80}
      bg: "#000000"
      fg: "#FFFFFF"
      label: {text: RPM, x: 4, y: 56, size: 0.5}
      value: {value: 3500, x: 80, y: 8, align: center}`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "Enable debug logging and stack traces")
	cmd.PersistentFlags().BoolVar(&a.flags.jsonLogs, "json-logs", false, "Write logs as JSON instead of console text")

	cmd.AddCommand(newRenderCmd(a))
	cmd.AddCommand(newOpsCmd(a))
	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newInspectCmd(a))
	cmd.AddCommand(newPreviewCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	level := "info"
	if a.flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: !a.flags.jsonLogs,
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.log = log

	handler := errors.NewLogHandler(&a.log)
	handler.Verbose = a.flags.verbose
	errors.SetHandler(handler)
	return nil
}

// load reads a layout and builds its boxes, warning about duplicate ids.
func (a *app) load(path string) (*config.Layout, box.Boxes, error) {
	l, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	boxes, err := l.Build()
	if err != nil {
		return nil, nil, err
	}
	for _, id := range boxes.Duplicates() {
		a.log.Warn().Uint16("id", id).Str("layout", path).Msg("duplicate box id, lookups return the first box")
	}
	a.log.Debug().Str("layout", path).Int("boxes", len(boxes)).Msg("loaded layout")
	return l, boxes, nil
}
