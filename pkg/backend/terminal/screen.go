// Package terminal draws boxes onto a character terminal through tcell,
// representing every CellW x CellH block of pixels by one cell.
package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/boxkit/pkg/rendering"
)

// Screen is a Backend over a tcell.Screen. Cells are painted with their
// background color; the last opaque enough write to any pixel of a block
// decides the cell color.
type Screen struct {
	screen tcell.Screen
	cellW  int
	cellH  int
	clear  rendering.Color
	// MinAlpha is the coverage below which glyph pixels are ignored.
	MinAlpha uint8
}

// New wraps an initialized tcell screen. cellW and cellH are the pixel
// extents of one cell; values below 1 are treated as 1.
func New(s tcell.Screen, cellW, cellH int, clear rendering.Color) *Screen {
	return &Screen{
		screen:   s,
		cellW:    max(cellW, 1),
		cellH:    max(cellH, 1),
		clear:    clear,
		MinAlpha: 0x80,
	}
}

// PixelSize returns the pixel surface covered by the terminal.
func (s *Screen) PixelSize() (w, h int) {
	cols, rows := s.screen.Size()
	return cols * s.cellW, rows * s.cellH
}

func (s *Screen) style(c rendering.Color) tcell.Style {
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue())))
}

func (s *Screen) DrawPixel(x, y int, c rendering.Color) {
	if x < 0 || y < 0 || c.Alpha() < s.MinAlpha {
		return
	}
	s.screen.SetContent(x/s.cellW, y/s.cellH, ' ', nil, s.style(c))
}

func (s *Screen) DrawRectangle(x, y, w, h int, c rendering.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	st := s.style(c)
	cols, rows := s.screen.Size()
	x0, y0 := max(x, 0)/s.cellW, max(y, 0)/s.cellH
	x1, y1 := min((x+w-1)/s.cellW, cols-1), min((y+h-1)/s.cellH, rows-1)
	for row := y0; row <= y1; row++ {
		for col := x0; col <= x1; col++ {
			s.screen.SetContent(col, row, ' ', nil, st)
		}
	}
}

func (s *Screen) ClearScreen() {
	s.screen.Fill(' ', s.style(s.clear))
}

// Show flushes pending cell changes to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}
