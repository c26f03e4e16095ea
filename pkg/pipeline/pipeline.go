// Package pipeline turns text or a prepared grid into rendered artifacts.
//
// The CLI and the render server both go through this package so they share
// defaults, validation and caching.
//
// # Stages
//
//  1. Grid: encode Text with go-qrcode, or import a matrix file
//  2. Render: draw the grid once per requested format (svg, png, pdf, json)
//
// Both stages are cached. Grids are keyed by text and error correction
// level, artifacts by grid digest plus every option that changes the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Text:    "https://example.com",
//	    Style:   "rounded",
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/matzehuels/qrsvg/pkg/cache"
	"github.com/matzehuels/qrsvg/pkg/errors"
	"github.com/matzehuels/qrsvg/pkg/qr/matrix"
	"github.com/matzehuels/qrsvg/pkg/render"
	"github.com/matzehuels/qrsvg/pkg/render/qr"
	"github.com/matzehuels/qrsvg/pkg/render/qr/geom"
	"github.com/matzehuels/qrsvg/pkg/render/qr/styles"
)

// Defaults shared by the CLI and the server.
const (
	DefaultStyle     = "square"
	DefaultSizeRatio = "1"
	DefaultLevel     = "M"
	DefaultScale     = 1.0
	MaxBoxSize       = 100
	MaxBorder        = 40
	MaxScale         = 16.0

	// MaxCanvas bounds the output edge in pixels, PNG scale included.
	MaxCanvas = matrix.MaxPixelSize
)

// minSymbol is the module count of the smallest QR symbol.
const minSymbol = 21

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options configures one pipeline run. It supports JSON for request bodies
// and TOML-decoded config.
type Options struct {
	// Grid source: exactly one of Text, MatrixPath or Matrix.
	Text       string         `json:"text,omitempty"`
	MatrixPath string         `json:"-"`
	Matrix     *matrix.Matrix `json:"-"`
	Level      string         `json:"level,omitempty"`

	// Layout. Zero BoxSize and nil Border keep the grid's own values.
	BoxSize int  `json:"box_size,omitempty"`
	Border  *int `json:"border,omitempty"`

	// Drawing
	Style          string  `json:"style,omitempty"`
	SizeRatio      string  `json:"size_ratio,omitempty"`
	FrontColor     string  `json:"front,omitempty"`
	FillColor      string  `json:"fill,omitempty"`
	Background     string  `json:"background,omitempty"`
	EyeColor       string  `json:"eye,omitempty"`
	EyeCenterColor string  `json:"eye_center,omitempty"`
	EyeStyle       string  `json:"eye_style,omitempty"`
	PathMode       bool    `json:"path_mode,omitempty"`
	Seed           *uint64 `json:"seed,omitempty"`

	// Output
	Formats    []string `json:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	PixelUnits bool     `json:"pixel_units,omitempty"`

	// Runtime options (not serialized)
	Workers int         `json:"-"`
	Refresh bool        `json:"-"`
	Logger  *log.Logger `json:"-"`

	ratio     decimal.Decimal
	level     matrix.Level
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Matrix    *matrix.Matrix
	GridHash  string
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics. Render counters come from
// the last format that was actually drawn.
type Stats struct {
	Modules    int
	Active     int
	Primitives int
	Fragments  int
	EncodeTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits per stage.
type CacheInfo struct {
	MatrixHit bool // Grid came from cache
	RenderHit bool // Every artifact came from cache
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list, defaulting to svg.
func ParseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// ValidateAndSetDefaults checks every field and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	sources := 0
	for _, set := range []bool{o.Text != "", o.MatrixPath != "", o.Matrix != nil} {
		if set {
			sources++
		}
	}
	switch sources {
	case 0:
		return errors.New(errors.ErrCodeInvalidInput, "text or matrix is required")
	case 1:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "text and matrix are mutually exclusive")
	}
	if o.Text != "" {
		if err := errors.ValidateText(o.Text); err != nil {
			return err
		}
	}

	if o.Level == "" {
		o.Level = DefaultLevel
	}
	level, err := matrix.ParseLevel(o.Level)
	if err != nil {
		return err
	}
	o.level, o.Level = level, string(level)

	if o.BoxSize < 0 || o.BoxSize > MaxBoxSize {
		return errors.New(errors.ErrCodeInvalidInput, "box size must be at most %d, got %d", MaxBoxSize, o.BoxSize)
	}
	if o.Border != nil && (*o.Border < 0 || *o.Border > MaxBorder) {
		return errors.New(errors.ErrCodeInvalidInput, "border must be in [0, %d], got %d", MaxBorder, *o.Border)
	}

	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if _, err := styles.Lookup(o.Style); err != nil {
		return err
	}
	if o.EyeStyle != "" {
		if _, err := styles.Lookup(o.EyeStyle); err != nil {
			return err
		}
	}

	if o.SizeRatio == "" {
		o.SizeRatio = DefaultSizeRatio
	}
	if o.ratio, err = geom.ParseRatio(o.SizeRatio); err != nil {
		return err
	}
	o.SizeRatio = o.ratio.String()

	if o.FrontColor == "" {
		o.FrontColor = qr.DefaultFrontColor
	}
	for _, c := range []string{o.FrontColor, o.FillColor, o.Background, o.EyeColor, o.EyeCenterColor} {
		if c == "" {
			continue
		}
		if err := errors.ValidateColor(c); err != nil {
			return err
		}
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if slices.Contains(o.Formats, FormatPDF) && !render.Available() {
		return errors.New(errors.ErrCodeUnsupported,
			"pdf export requires librsvg (macOS: brew install librsvg, Linux: apt install librsvg2-bin)")
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %g], got %g", MaxScale, o.Scale)
	}
	if o.Text != "" && o.BoxSize > 0 {
		border := matrix.DefaultBorder
		if o.Border != nil {
			border = *o.Border
		}
		if err := o.checkCanvas((minSymbol + 2*border) * o.BoxSize); err != nil {
			return err
		}
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// checkCanvas rejects output whose edge, scaled for PNG, exceeds MaxCanvas.
func (o *Options) checkCanvas(pixels int) error {
	edge := float64(pixels)
	if slices.Contains(o.Formats, FormatPNG) {
		edge *= o.Scale
	}
	if edge > MaxCanvas {
		return errors.New(errors.ErrCodeInvalidInput, "output would be %.0f pixels wide (max %d); lower box or scale", edge, MaxCanvas)
	}
	return nil
}

// Random reports whether the style draws with randomness.
func (o *Options) Random() bool {
	for _, name := range []string{o.Style, o.EyeStyle} {
		if f, err := styles.Lookup(name); err == nil && f.Random {
			return true
		}
	}
	return false
}

// Cacheable reports whether artifacts are reproducible from the options.
// Random styles are cacheable only with a fixed seed.
func (o *Options) Cacheable() bool {
	return !o.Random() || o.Seed != nil
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:         format,
		Style:          o.Style,
		SizeRatio:      o.SizeRatio,
		FrontColor:     o.FrontColor,
		FillColor:      o.FillColor,
		Background:     o.Background,
		EyeColor:       o.EyeColor,
		EyeCenterColor: o.EyeCenterColor,
		EyeStyle:       o.EyeStyle,
		PathMode:       o.PathMode,
	}
	if format == FormatSVG || format == FormatPDF {
		k.PixelUnits = o.PixelUnits
	}
	if format == FormatPNG {
		k.Scale = int(o.Scale * 100)
	}
	if o.Seed != nil && o.Random() {
		k.Seed = *o.Seed
	}
	return k
}

// pathFill is the color of merged path output.
func (o *Options) pathFill() string {
	if o.FillColor != "" {
		return o.FillColor
	}
	return o.FrontColor
}

// renderOptions translates the options for the render driver.
func (o *Options) renderOptions(stats *qr.Stats) []qr.Option {
	opts := []qr.Option{
		qr.WithSizeRatio(o.ratio),
		qr.WithFrontColor(o.FrontColor),
		qr.WithStats(stats),
	}
	if o.FillColor != "" {
		opts = append(opts, qr.WithFillColor(o.FillColor))
	}
	if o.EyeColor != "" || o.EyeCenterColor != "" {
		opts = append(opts, qr.WithEyeColors(o.EyeColor, o.EyeCenterColor))
	}
	if o.EyeStyle != "" {
		opts = append(opts, qr.WithEyeStyle(o.EyeStyle))
	}
	if o.PathMode {
		opts = append(opts, qr.WithPathMode())
	}
	if o.Seed != nil {
		opts = append(opts, qr.WithSeed(*o.Seed))
	}
	if o.Workers > 1 {
		opts = append(opts, qr.WithWorkers(o.Workers))
	}
	return opts
}

func (o *Options) String() string {
	return fmt.Sprintf("style=%s ratio=%s formats=%v", o.Style, o.SizeRatio, o.Formats)
}
