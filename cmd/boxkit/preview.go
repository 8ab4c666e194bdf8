package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/go-drift/boxkit/pkg/backend/terminal"
	"github.com/go-drift/boxkit/pkg/box"
	"github.com/go-drift/boxkit/pkg/errors"
	"github.com/go-drift/boxkit/pkg/render"
	"github.com/go-drift/boxkit/pkg/text"
)

func newPreviewCmd(a *app) *cobra.Command {
	var (
		cellW, cellH int
		step         float32
	)

	cmd := &cobra.Command{
		Use:   "preview LAYOUT",
		Short: "Show a layout in the terminal",
		Long: `preview paints a layout onto the terminal, one cell per block of pixels.

Keys:
  Tab        select the next box with a value
  Up/Down    change the selected value by --step
  r          repaint every box
  q, Esc     quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, boxes, err := a.load(args[0])
			if err != nil {
				return err
			}
			engine, err := l.Engine()
			if err != nil {
				return err
			}

			defer errors.Recover("boxkit.preview")

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()

			backend := terminal.New(screen, cellW, cellH, l.Clear())
			p := newPreview(screen, backend, boxes, engine, step,
				render.WithOptimization(l.IsOptimized()), render.WithLogger(a.log))
			p.run()
			return nil
		},
	}

	cmd.Flags().IntVar(&cellW, "cell-w", 4, "Pixel width of one terminal cell")
	cmd.Flags().IntVar(&cellH, "cell-h", 8, "Pixel height of one terminal cell")
	cmd.Flags().Float32Var(&step, "step", 1, "Value change per Up/Down key")

	return cmd
}

// preview is the terminal paint loop.
type preview struct {
	screen   tcell.Screen
	backend  *terminal.Screen
	renderer *render.Renderer
	boxes    box.Boxes
	valued   []*box.Box
	focus    int
	step     float32
}

func newPreview(s tcell.Screen, backend *terminal.Screen, boxes box.Boxes, layout text.Layout, step float32, opts ...render.Option) *preview {
	p := &preview{
		screen:   s,
		backend:  backend,
		renderer: render.New(backend, layout, opts...),
		boxes:    boxes,
		step:     step,
	}
	for _, b := range boxes {
		if b != nil && b.Value != nil {
			p.valued = append(p.valued, b)
		}
	}
	return p
}

func (p *preview) run() {
	p.repaint()
	for {
		if p.handle(p.screen.PollEvent()) {
			return
		}
	}
}

// paint renders the boxes that need it and flushes the terminal.
func (p *preview) paint() {
	p.renderer.Render(p.boxes)
	p.backend.Show()
}

// repaint clears the terminal and redraws every box.
func (p *preview) repaint() {
	p.backend.ClearScreen()
	p.boxes.MarkAll()
	p.paint()
}

// handle processes one event and reports whether the preview should exit.
func (p *preview) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case nil:
		return true
	case *tcell.EventResize:
		p.screen.Sync()
		p.repaint()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyTab:
			if len(p.valued) > 0 {
				p.focus = (p.focus + 1) % len(p.valued)
			}
		case tcell.KeyUp:
			p.adjust(p.step)
		case tcell.KeyDown:
			p.adjust(-p.step)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case 'r':
				p.repaint()
			}
		}
	}
	return false
}

func (p *preview) adjust(delta float32) {
	if p.selected() == nil {
		return
	}
	b := p.selected()
	b.SetValue(b.Value.Value + delta)
	p.paint()
}

// selected returns the box changed by Up and Down, or nil.
func (p *preview) selected() *box.Box {
	if len(p.valued) == 0 {
		return nil
	}
	return p.valued[p.focus]
}
