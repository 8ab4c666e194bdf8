package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/go-drift/boxkit/pkg/box"
	"github.com/go-drift/boxkit/pkg/render"
	"github.com/go-drift/boxkit/pkg/rendering"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
	tableStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

var inspectColumns = []struct {
	title string
	width int
}{
	{"ID", 5},
	{"RECT", 18},
	{"COLORING", 26},
	{"VALUE", 16},
	{"BG", 14},
	{"FG", 14},
	{"LABEL", 16},
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect LAYOUT",
		Short: "List the boxes of a layout with their resolved colors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, boxes, err := a.load(args[0])
			if err != nil {
				return err
			}
			title := headerStyle.Render(fmt.Sprintf("%s  %dx%d  %d boxes", args[0], l.Width, l.Height, len(boxes)))
			fmt.Fprintln(cmd.OutOrStdout(), lipgloss.JoinVertical(lipgloss.Left, title, tableStyle.Render(inspectTable(boxes))))
			return nil
		},
	}
}

func inspectTable(boxes box.Boxes) string {
	header := make([]string, len(inspectColumns))
	for i, col := range inspectColumns {
		header[i] = headerStyle.Render(col.title)
	}
	rows := []string{tableRow(header)}
	for _, b := range boxes {
		rows = append(rows, tableRow(boxRow(b)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func tableRow(cells []string) string {
	rendered := make([]string, len(cells))
	for i, c := range cells {
		rendered[i] = cellStyle.Width(inspectColumns[i].width).Render(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func boxRow(b *box.Box) []string {
	bg, fg := box.Resolve(b.Value, b.DefaultBg, b.DefaultFg)
	value, label := "-", "-"
	if b.Value != nil {
		value = render.FormatValue(b.Value.Value, b.Value.IsFloat)
	}
	if b.Label != nil {
		label = b.Label.Text
	}
	return []string{
		fmt.Sprint(b.ID),
		fmt.Sprintf("%d,%d %dx%d", b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H),
		describeColoring(b.Value),
		value,
		swatch(bg),
		swatch(fg),
		label,
	}
}

func describeColoring(v *box.Value) string {
	if v == nil || v.Coloring == nil {
		return "defaults"
	}
	switch c := v.Coloring.(type) {
	case box.Thresholds:
		return fmt.Sprintf("thresholds (%d)", len(c))
	case box.Interpolation:
		return fmt.Sprintf("interpolation %g..%g", c.Min, c.Max)
	case box.Slider:
		return fmt.Sprintf("slider %s %g..%g", c.Anchor, c.Min, c.Max)
	default:
		return fmt.Sprintf("%T", c)
	}
}

// swatch renders a color sample followed by its hex value.
func swatch(c rendering.Color) string {
	hex := fmt.Sprintf("#%02X%02X%02X", c.Red(), c.Green(), c.Blue())
	sample := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
	return sample + " " + hex
}
