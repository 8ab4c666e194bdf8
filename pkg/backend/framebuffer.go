package backend

import (
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/go-drift/boxkit/pkg/rendering"
)

// Framebuffer is a software Backend over an RGBA image. Rectangles replace
// the destination; pixels are composited over it so glyph coverage blends
// with the box background.
type Framebuffer struct {
	img        *image.RGBA
	clearColor rendering.Color
	uniform    image.Uniform
}

// NewFramebuffer allocates a w x h surface cleared to clearColor.
func NewFramebuffer(w, h int, clearColor rendering.Color) *Framebuffer {
	fb := &Framebuffer{
		img:        image.NewRGBA(image.Rect(0, 0, w, h)),
		clearColor: clearColor,
	}
	fb.ClearScreen()
	return fb
}

func (f *Framebuffer) DrawPixel(x, y int, c rendering.Color) {
	f.fill(image.Rect(x, y, x+1, y+1), c, draw.Over)
}

func (f *Framebuffer) DrawRectangle(x, y, w, h int, c rendering.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	f.fill(image.Rect(x, y, x+w, y+h), c, draw.Src)
}

func (f *Framebuffer) ClearScreen() {
	f.fill(f.img.Bounds(), f.clearColor, draw.Src)
}

func (f *Framebuffer) fill(r image.Rectangle, c rendering.Color, op draw.Op) {
	f.uniform.C = c.NRGBA()
	draw.Draw(f.img, r, &f.uniform, image.Point{}, op)
}

// At returns the stored color of one pixel as ARGB.
func (f *Framebuffer) At(x, y int) rendering.Color {
	n := color.NRGBAModel.Convert(f.img.At(x, y)).(color.NRGBA)
	return rendering.ARGB(n.A, n.R, n.G, n.B)
}

// Image returns the backing image.
func (f *Framebuffer) Image() *image.RGBA {
	return f.img
}

// Scaled returns the surface enlarged by an integer factor with
// nearest-neighbor sampling, preserving hard box edges.
func (f *Framebuffer) Scaled(factor int) image.Image {
	if factor <= 1 {
		return f.img
	}
	b := f.img.Bounds()
	return imaging.Resize(f.img, b.Dx()*factor, b.Dy()*factor, imaging.NearestNeighbor)
}

// WritePNG encodes the surface, scaled by factor, as PNG.
func (f *Framebuffer) WritePNG(w io.Writer, factor int) error {
	return imaging.Encode(w, f.Scaled(factor), imaging.PNG)
}
