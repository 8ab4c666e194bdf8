// Package config loads boxkit layout files.
//
// A layout file is YAML describing the display size and an ordered list of
// boxes. Loading validates the document structure; building the boxes runs
// every label and value through the box constructors so the same rules
// apply as for boxes built in code.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/boxkit/pkg/box"
	"github.com/go-drift/boxkit/pkg/errors"
	"github.com/go-drift/boxkit/pkg/rendering"
	"github.com/go-drift/boxkit/pkg/text"
)

// SchemaMajor is the only layout schema major version accepted.
const SchemaMajor = "v3"

// Layout is a parsed layout file.
type Layout struct {
	Schema     string      `yaml:"schema" validate:"required"`
	Width      int         `yaml:"width" validate:"gt=0,lte=65535"`
	Height     int         `yaml:"height" validate:"gt=0,lte=65535"`
	Optimized  *bool       `yaml:"optimized"`
	ClearColor string      `yaml:"clear_color" validate:"omitempty,color"`
	Font       FontConfig  `yaml:"font"`
	Boxes      []BoxConfig `yaml:"boxes" validate:"required,min=1,dive"`

	// Path is the file the layout was loaded from.
	Path string `yaml:"-"`
}

// FontConfig selects the text engine font.
type FontConfig struct {
	BaseSize float64 `yaml:"base_size" validate:"omitempty,gt=0"`
	// File is a TrueType or OpenType file, relative to the layout file.
	File string `yaml:"file"`
}

// BoxConfig describes one box.
type BoxConfig struct {
	ID    uint16       `yaml:"id"`
	Rect  RectConfig   `yaml:"rect"`
	Bg    string       `yaml:"bg" validate:"required,color"`
	Fg    string       `yaml:"fg" validate:"required,color"`
	Label *LabelConfig `yaml:"label"`
	Value *ValueConfig `yaml:"value"`
}

// RectConfig is a box rectangle in display pixels.
type RectConfig struct {
	X uint16 `yaml:"x"`
	Y uint16 `yaml:"y"`
	W uint16 `yaml:"w" validate:"gt=0"`
	H uint16 `yaml:"h" validate:"gt=0"`
}

// LabelConfig describes static box text.
type LabelConfig struct {
	Text  string  `yaml:"text" validate:"required"`
	X     uint16  `yaml:"x"`
	Y     uint16  `yaml:"y"`
	Size  float32 `yaml:"size" validate:"gte=0"`
	Align string  `yaml:"align" validate:"omitempty,oneof=left center right"`
}

// ValueConfig describes a numeric reading.
type ValueConfig struct {
	Value    float32         `yaml:"value"`
	Float    bool            `yaml:"float"`
	X        uint16          `yaml:"x"`
	Y        uint16          `yaml:"y"`
	Size     float32         `yaml:"size" validate:"gte=0"`
	Align    string          `yaml:"align" validate:"omitempty,oneof=left center right"`
	Coloring *ColoringConfig `yaml:"coloring"`
}

// ColoringConfig is a tagged coloring strategy. Type selects which of the
// remaining fields is read.
type ColoringConfig struct {
	Type          string               `yaml:"type" validate:"required,oneof=thresholds interpolation slider"`
	Thresholds    []ThresholdConfig    `yaml:"thresholds" validate:"required_if=Type thresholds,dive"`
	Interpolation *InterpolationConfig `yaml:"interpolation" validate:"required_if=Type interpolation"`
	Slider        *SliderConfig        `yaml:"slider" validate:"required_if=Type slider"`
}

type ThresholdConfig struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
	Bg  string  `yaml:"bg" validate:"required,color"`
	Fg  string  `yaml:"fg" validate:"required,color"`
}

type InterpolationConfig struct {
	ColorMin string  `yaml:"color_min" validate:"required,color"`
	ColorMax string  `yaml:"color_max" validate:"required,color"`
	Min      float32 `yaml:"min"`
	Max      float32 `yaml:"max"`
}

type SliderConfig struct {
	Color  string  `yaml:"color" validate:"required,color"`
	Anchor string  `yaml:"anchor" validate:"required,oneof=top bottom left right"`
	Min    float32 `yaml:"min"`
	Max    float32 `yaml:"max"`
	Margin uint16  `yaml:"margin"`
}

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads, parses and validates the layout at path.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.ConfigError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse decodes layout data. path is only used in errors.
func Parse(path string, data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, &errors.ConfigError{Path: path, Line: extractLine(err), Err: err}
	}
	l.Path = path

	if err := checkSchema(l.Schema); err != nil {
		return nil, &errors.ConfigError{Path: path, Field: "schema", Err: err}
	}
	if err := validateLayout(&l); err != nil {
		return nil, err
	}
	return &l, nil
}

func checkSchema(v string) error {
	if v == "" {
		return fmt.Errorf("missing schema version, expected %s", SchemaMajor)
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("schema %q is not a semantic version such as %s.0.0", v, SchemaMajor)
	}
	if major := semver.Major(v); major != SchemaMajor {
		return fmt.Errorf("schema %s is not supported, only %s layouts can be loaded", major, SchemaMajor)
	}
	return nil
}

func extractLine(err error) int {
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return line
}

// IsOptimized reports the optimization setting, defaulting to on.
func (l *Layout) IsOptimized() bool {
	return l.Optimized == nil || *l.Optimized
}

// Clear returns the color used by ClearScreen, black by default.
func (l *Layout) Clear() rendering.Color {
	if l.ClearColor == "" {
		return rendering.ColorBlack
	}
	c, _ := rendering.ParseHex(l.ClearColor)
	return c
}

// Engine builds the text engine described by the font section.
func (l *Layout) Engine() (*text.Engine, error) {
	var opts []text.EngineOption
	if l.Font.BaseSize > 0 {
		opts = append(opts, text.WithBaseSize(l.Font.BaseSize))
	}
	if l.Font.File != "" {
		p := l.Font.File
		if !filepath.IsAbs(p) && l.Path != "" {
			p = filepath.Join(filepath.Dir(l.Path), p)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, &errors.ConfigError{Path: l.Path, Field: "font.file", Err: err}
		}
		opts = append(opts, text.WithFontData(data))
	}
	return text.NewEngine(opts...), nil
}

// Build creates the box collection. Every box starts marked updated so the
// first optimized pass draws it.
func (l *Layout) Build() (box.Boxes, error) {
	boxes := make(box.Boxes, 0, len(l.Boxes))
	for i, bc := range l.Boxes {
		b, err := bc.build()
		if err != nil {
			return nil, &errors.ConfigError{Path: l.Path, Field: fmt.Sprintf("boxes[%d]", i), Err: err}
		}
		if int(b.Rect.X)+int(b.Rect.W) > l.Width || int(b.Rect.Y)+int(b.Rect.H) > l.Height {
			return nil, &errors.ConfigError{
				Path:  l.Path,
				Field: fmt.Sprintf("boxes[%d].rect", i),
				Err:   fmt.Errorf("rect exceeds the %dx%d display", l.Width, l.Height),
			}
		}
		boxes = append(boxes, b)
	}
	return boxes, nil
}

func (bc BoxConfig) build() (*box.Box, error) {
	var colors colorParser
	b := &box.Box{
		ID:        bc.ID,
		Updated:   true,
		Rect:      rendering.Rect{X: bc.Rect.X, Y: bc.Rect.Y, W: bc.Rect.W, H: bc.Rect.H},
		DefaultBg: colors.parse("bg", bc.Bg),
		DefaultFg: colors.parse("fg", bc.Fg),
	}
	if colors.err != nil {
		return nil, colors.err
	}
	if lc := bc.Label; lc != nil {
		align, err := text.ParseAlign(lc.Align)
		if err != nil {
			return nil, err
		}
		b.Label, err = box.NewLabel(lc.Text, rendering.Coords{X: lc.X, Y: lc.Y}, sizeOrDefault(lc.Size), align)
		if err != nil {
			return nil, fmt.Errorf("label: %w", err)
		}
	}
	if vc := bc.Value; vc != nil {
		align, err := text.ParseAlign(vc.Align)
		if err != nil {
			return nil, err
		}
		coloring, err := vc.Coloring.build()
		if err != nil {
			return nil, fmt.Errorf("value.coloring: %w", err)
		}
		b.Value, err = box.NewValue(vc.Value, vc.Float, rendering.Coords{X: vc.X, Y: vc.Y}, sizeOrDefault(vc.Size), align, coloring)
		if err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (cc *ColoringConfig) build() (box.Coloring, error) {
	if cc == nil {
		return nil, nil
	}
	var colors colorParser
	switch cc.Type {
	case "thresholds":
		ts := make(box.Thresholds, len(cc.Thresholds))
		for i, tc := range cc.Thresholds {
			ts[i] = box.Threshold{
				Min: tc.Min,
				Max: tc.Max,
				Bg:  colors.parse(fmt.Sprintf("thresholds[%d].bg", i), tc.Bg),
				Fg:  colors.parse(fmt.Sprintf("thresholds[%d].fg", i), tc.Fg),
			}
		}
		return ts, colors.err
	case "interpolation":
		in := cc.Interpolation
		if in == nil {
			return nil, errMissingSection("interpolation")
		}
		return box.Interpolation{
			ColorMin: colors.parse("interpolation.color_min", in.ColorMin),
			ColorMax: colors.parse("interpolation.color_max", in.ColorMax),
			Min:      in.Min,
			Max:      in.Max,
		}, colors.err
	case "slider":
		sc := cc.Slider
		if sc == nil {
			return nil, errMissingSection("slider")
		}
		anchor, err := box.ParseAnchor(sc.Anchor)
		if err != nil {
			return nil, err
		}
		c := colors.parse("slider.color", sc.Color)
		return box.Slider{Color: c, Anchor: anchor, Min: sc.Min, Max: sc.Max, Margin: sc.Margin}, colors.err
	default:
		return nil, fmt.Errorf("unknown coloring type %q", cc.Type)
	}
}

// sizeOrDefault maps an omitted font size to 1.0.
func sizeOrDefault(s float32) float32 {
	if s == 0 {
		return 1
	}
	return s
}

func errMissingSection(name string) error {
	return fmt.Errorf("coloring type %s needs a %s section", name, name)
}

// colorParser parses a series of colors and keeps the first error.
type colorParser struct {
	err error
}

func (p *colorParser) parse(field, s string) rendering.Color {
	c, err := rendering.ParseHex(s)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", field, err)
	}
	return c
}
