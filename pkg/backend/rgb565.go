package backend

import "github.com/go-drift/boxkit/pkg/rendering"

// RGB565 renders into a little-endian RGB565 framebuffer, the format of most
// small SPI and parallel LCD panels. Callers own the buffer and its stride.
type RGB565 struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
	// Clear is the color used by ClearScreen.
	Clear rendering.Color
}

// NewRGB565 allocates a tightly packed w x h buffer.
func NewRGB565(w, h int, clear rendering.Color) *RGB565 {
	return &RGB565{Buf: make([]byte, w*h*2), Stride: w * 2, W: w, H: h, Clear: clear}
}

func (t *RGB565) valid() bool {
	return t != nil && t.Buf != nil && t.Stride > 0 && t.W > 0 && t.H > 0
}

func (t *RGB565) offset(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return 0, false
	}
	off := y*t.Stride + x*2
	if off+1 >= len(t.Buf) {
		return 0, false
	}
	return off, true
}

func (t *RGB565) DrawPixel(x, y int, c rendering.Color) {
	if !t.valid() {
		return
	}
	off, ok := t.offset(x, y)
	if !ok {
		return
	}
	a := uint32(c.Alpha())
	if a == 0 {
		return
	}
	if a < 0xFF {
		dst := rgb888From565(uint16(t.Buf[off]) | uint16(t.Buf[off+1])<<8)
		blend := func(s, d uint8) uint8 {
			return uint8((uint32(s)*a + uint32(d)*(0xFF-a)) / 0xFF)
		}
		c = rendering.RGB(blend(c.Red(), dst.Red()), blend(c.Green(), dst.Green()), blend(c.Blue(), dst.Blue()))
	}
	p := rgb565From888(c)
	t.Buf[off] = byte(p)
	t.Buf[off+1] = byte(p >> 8)
}

func (t *RGB565) DrawRectangle(x, y, w, h int, c rendering.Color) {
	if !t.valid() {
		return
	}
	p := rgb565From888(c)
	lo, hi := byte(p), byte(p>>8)
	for py := max(y, 0); py < min(y+h, t.H); py++ {
		for px := max(x, 0); px < min(x+w, t.W); px++ {
			off, ok := t.offset(px, py)
			if !ok {
				continue
			}
			t.Buf[off] = lo
			t.Buf[off+1] = hi
		}
	}
}

func (t *RGB565) ClearScreen() {
	t.DrawRectangle(0, 0, t.W, t.H, t.Clear)
}

// At returns the stored pixel expanded to opaque ARGB.
func (t *RGB565) At(x, y int) rendering.Color {
	if !t.valid() {
		return rendering.ColorTransparent
	}
	off, ok := t.offset(x, y)
	if !ok {
		return rendering.ColorTransparent
	}
	return rgb888From565(uint16(t.Buf[off]) | uint16(t.Buf[off+1])<<8)
}

func rgb565From888(c rendering.Color) uint16 {
	return uint16(c.Red()>>3)<<11 | uint16(c.Green()>>2)<<5 | uint16(c.Blue()>>3)
}

func rgb888From565(p uint16) rendering.Color {
	r := uint8(p>>11) & 0x1F
	g := uint8(p>>5) & 0x3F
	b := uint8(p) & 0x1F
	return rendering.RGB(r<<3|r>>2, g<<2|g>>4, b<<3|b>>2)
}
