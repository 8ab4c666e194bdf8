package rendering

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color is stored as ARGB8888 (0xAARRGGBB): alpha in bits 24-31, red in
// 16-23, green in 8-15 and blue in 0-7.
type Color uint32

// ARGB constructs a Color from alpha, red, green, blue bytes.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return ARGB(0xFF, r, g, b)
}

// Alpha returns the alpha channel.
func (c Color) Alpha() uint8 { return uint8(c >> 24) }

// Red returns the red channel.
func (c Color) Red() uint8 { return uint8(c >> 16) }

// Green returns the green channel.
func (c Color) Green() uint8 { return uint8(c >> 8) }

// Blue returns the blue channel.
func (c Color) Blue() uint8 { return uint8(c) }

// WithAlpha returns a copy of the color with the given alpha (0-255).
func (c Color) WithAlpha(a uint8) Color {
	return Color(uint32(a)<<24 | uint32(c)&0x00FFFFFF)
}

// ModifyRGB adds delta to each of the red, green and blue channels,
// clamping every channel to [0, 255]. Alpha is left untouched.
func (c Color) ModifyRGB(delta int) Color {
	return ARGB(c.Alpha(),
		clampChannel(int(c.Red())+delta),
		clampChannel(int(c.Green())+delta),
		clampChannel(int(c.Blue())+delta))
}

// Lerp blends a and b channel by channel. t is clamped to [0, 1]; 0 yields
// a and 1 yields b.
func Lerp(a, b Color, t float64) Color {
	if math.IsNaN(t) || t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return clampChannel(int(math.Round(float64(x) + (float64(y)-float64(x))*t)))
	}
	return ARGB(
		mix(a.Alpha(), b.Alpha()),
		mix(a.Red(), b.Red()),
		mix(a.Green(), b.Green()),
		mix(a.Blue(), b.Blue()),
	)
}

// NRGBA converts the color to a non-premultiplied image/color value.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: c.Alpha()}
}

// String formats the color as 0xAARRGGBB.
func (c Color) String() string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// ParseHex parses "#RRGGBB", "#AARRGGBB" or "0xAARRGGBB". Six digit forms
// are opaque.
func ParseHex(s string) (Color, error) {
	digits := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(digits, "#"):
		digits = digits[1:]
	case strings.HasPrefix(digits, "0x"), strings.HasPrefix(digits, "0X"):
		digits = digits[2:]
	default:
		return 0, fmt.Errorf("color %q: missing # or 0x prefix", s)
	}
	if len(digits) != 6 && len(digits) != 8 {
		return 0, fmt.Errorf("color %q: want 6 or 8 hex digits, got %d", s, len(digits))
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	if len(digits) == 6 {
		v |= 0xFF000000
	}
	return Color(v), nil
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 0xFF {
		return 0xFF
	}
	return uint8(v)
}

// Common colors.
var (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
	ColorRed         = Color(0xFFFF0000)
	ColorGreen       = Color(0xFF00FF00)
	ColorBlue        = Color(0xFF0000FF)
)
