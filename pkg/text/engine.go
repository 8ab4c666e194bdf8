package text

import (
	stderrors "errors"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/boxkit/pkg/errors"
	"github.com/go-drift/boxkit/pkg/rendering"
)

// DefaultBaseSize is the pixel height of a size 1.0 font.
const DefaultBaseSize = 24

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithBaseSize sets the pixel size used for a font size of 1.0.
func WithBaseSize(px float64) EngineOption {
	return func(e *Engine) {
		if px > 0 {
			e.baseSize = px
		}
	}
}

// WithFontData replaces the bundled Go Regular font with TrueType or
// OpenType data.
func WithFontData(data []byte) EngineOption {
	return func(e *Engine) {
		e.fontData = data
	}
}

// Engine is the default Layout. It rasterizes glyphs into an alpha mask and
// forwards every covered pixel to the sink.
type Engine struct {
	baseSize float64
	fontData []byte
	font     *opentype.Font

	mu    sync.Mutex
	faces map[float32]font.Face
}

// NewEngine builds an Engine. If the font cannot be parsed the error is
// reported and the engine falls back to the fixed 7x13 bitmap face.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		baseSize: DefaultBaseSize,
		fontData: goregular.TTF,
		faces:    make(map[float32]font.Face),
	}
	for _, opt := range opts {
		opt(e)
	}
	f, err := opentype.Parse(e.fontData)
	if err != nil {
		errors.Report(&errors.BoxError{
			Op:   "text.NewEngine",
			Kind: errors.KindFont,
			Err:  err,
		})
		return e
	}
	e.font = f
	return e
}

// BaseSize returns the pixel size of a size 1.0 font.
func (e *Engine) BaseSize() float64 {
	return e.baseSize
}

// Fallback reports whether the engine is using the bitmap face.
func (e *Engine) Fallback() bool {
	return e.font == nil
}

func (e *Engine) face(size float32) font.Face {
	if size <= 0 {
		size = 1
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if f, ok := e.faces[size]; ok {
		return f
	}
	var face font.Face = basicfont.Face7x13
	if e.font != nil {
		f, err := opentype.NewFace(e.font, &opentype.FaceOptions{
			Size:    e.baseSize * float64(size),
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			errors.Report(&errors.BoxError{
				Op:   "text.Engine.face",
				Kind: errors.KindFont,
				Err:  err,
			})
		} else {
			face = f
		}
	}
	e.faces[size] = face
	return face
}

// Measure returns the advance width of s in pixels.
func (e *Engine) Measure(s string, size float32) int {
	return font.MeasureString(e.face(size), s).Ceil()
}

// RenderAligned implements Layout.
func (e *Engine) RenderAligned(dst PixelSink, origin image.Point, align Align, s string, c rendering.Color, size float32) {
	if dst == nil || s == "" {
		return
	}
	mask, err := e.rasterize(s, size)
	if err != nil {
		return
	}
	width := mask.Rect.Dx()
	x0 := origin.X
	switch align {
	case AlignCenter:
		x0 -= width / 2
	case AlignRight:
		x0 -= width
	}

	rgb := uint32(c) & 0x00FFFFFF
	alpha := uint32(c.Alpha())
	for y := 0; y < mask.Rect.Dy(); y++ {
		for x := 0; x < width; x++ {
			coverage := uint32(mask.AlphaAt(x, y).A)
			if coverage == 0 {
				continue
			}
			a := coverage * alpha / 0xFF
			if a == 0 {
				continue
			}
			dst.DrawPixel(x0+x, origin.Y+y, rendering.Color(rgb|a<<24))
		}
	}
}

var errEmptyMask = stderrors.New("text has no extent")

func (e *Engine) rasterize(s string, size float32) (*image.Alpha, error) {
	face := e.face(size)
	metrics := face.Metrics()
	width := font.MeasureString(face, s).Ceil()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	if width <= 0 || height <= 0 {
		return nil, errEmptyMask
	}
	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: metrics.Ascent},
	}
	d.DrawString(s)
	return mask, nil
}
