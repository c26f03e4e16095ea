package sink

import (
	"bytes"
	"io"
	"math"
	"strings"

	"github.com/gogpu/gg"

	"github.com/matzehuels/qrsvg/pkg/errors"
	"github.com/matzehuels/qrsvg/pkg/render/qr/shape"
)

// RasterOption configures [NewRaster].
type RasterOption func(*Raster)

// WithScale multiplies the canvas size (default 1).
func WithScale(s float64) RasterOption { return func(r *Raster) { r.scale = s } }

// WithRasterBackground fills the canvas before any cell (default white).
func WithRasterBackground(color string) RasterOption {
	return func(r *Raster) { r.background = color }
}

// WithRasterPathFill sets the color of path fragments (default #000000).
func WithRasterPathFill(color string) RasterOption {
	return func(r *Raster) { r.pathFill = color }
}

// Raster paints primitives onto a gogpu/gg canvas.
type Raster struct {
	dc         *gg.Context
	scale      float64
	background string
	pathFill   string
	x, y       float64 // current point, for H and V
}

// NewRaster creates a square canvas of size pixels times the scale.
func NewRaster(size int, opts ...RasterOption) *Raster {
	r := &Raster{scale: 1, background: "#ffffff", pathFill: "#000000"}
	for _, opt := range opts {
		opt(r)
	}
	px := int(math.Ceil(float64(size) * r.scale))
	r.dc = gg.NewContext(px, px)
	if hex, ok := hexColor(r.background); ok {
		r.dc.ClearWithColor(gg.Hex(hex))
	}
	r.dc.Scale(r.scale, r.scale)
	return r
}

func (r *Raster) AppendElement(p shape.Primitive) error {
	hex, ok := hexColor(p.Fill)
	if !ok {
		return nil
	}
	r.dc.SetHexColor(hex)

	if p.Kind == shape.KindPolygon && p.Polygon.Rotate != 0 {
		r.dc.Push()
		defer r.dc.Pop()
		rad := float64(p.Polygon.Rotate) * math.Pi / 180
		r.dc.RotateAbout(rad, p.Polygon.Pivot.X.InexactFloat64(), p.Polygon.Pivot.Y.InexactFloat64())
	}
	if p.Kind == shape.KindCircle {
		c := p.Circle
		r.dc.DrawCircle(c.CX.InexactFloat64(), c.CY.InexactFloat64(), c.R.InexactFloat64())
	} else {
		r.trace(p.AsPath())
	}
	if err := r.dc.Fill(); err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "fill %s", p.Kind)
	}
	return nil
}

func (r *Raster) AppendPathFragment(p shape.Path) error {
	hex, ok := hexColor(r.pathFill)
	if !ok {
		return nil
	}
	r.dc.SetHexColor(hex)
	r.trace(p)
	if err := r.dc.Fill(); err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "fill path fragment")
	}
	return nil
}

func (r *Raster) trace(p shape.Path) {
	var sx, sy float64
	for _, c := range p {
		a := make([]float64, len(c.Args))
		for i, d := range c.Args {
			a[i] = d.InexactFloat64()
		}
		switch c.Op {
		case shape.OpMove:
			r.dc.MoveTo(a[0], a[1])
			r.x, r.y, sx, sy = a[0], a[1], a[0], a[1]
		case shape.OpLine:
			r.lineTo(a[0], a[1])
		case shape.OpHoriz:
			r.lineTo(a[0], r.y)
		case shape.OpVert:
			r.lineTo(r.x, a[0])
		case shape.OpCubic:
			r.dc.CubicTo(a[0], a[1], a[2], a[3], a[4], a[5])
			r.x, r.y = a[4], a[5]
		case shape.OpArc:
			r.arcTo(a[0], a[4] != 0, a[5], a[6])
		case shape.OpClose:
			r.dc.ClosePath()
			r.x, r.y = sx, sy
		}
	}
}

func (r *Raster) lineTo(x, y float64) {
	r.dc.LineTo(x, y)
	r.x, r.y = x, y
}

// arcTo approximates a small-arc circular SVG arc from the current point with
// cubic segments of at most 90 degrees. gg only exposes center-parameterized
// arcs, so the center is recovered from the endpoints first.
func (r *Raster) arcTo(radius float64, sweep bool, x, y float64) {
	x1, y1 := r.x, r.y
	hx, hy := (x1-x)/2, (y1-y)/2
	d2 := hx*hx + hy*hy
	if d2 == 0 {
		return
	}
	if radius == 0 {
		r.lineTo(x, y)
		return
	}
	radius = math.Max(radius, math.Sqrt(d2))

	coef := math.Sqrt(math.Max(0, radius*radius-d2) / d2)
	if !sweep {
		coef = -coef
	}
	cx := coef*hy + (x1+x)/2
	cy := -coef*hx + (y1+y)/2

	a1 := math.Atan2(y1-cy, x1-cx)
	delta := math.Atan2(y-cy, x-cx) - a1
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	}
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	step := delta / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := range n {
		s := a1 + float64(i)*step
		e := s + step
		p1x, p1y := cx+radius*math.Cos(s), cy+radius*math.Sin(s)
		p2x, p2y := cx+radius*math.Cos(e), cy+radius*math.Sin(e)
		r.dc.CubicTo(
			p1x-k*radius*math.Sin(s), p1y+k*radius*math.Cos(s),
			p2x+k*radius*math.Sin(e), p2y-k*radius*math.Cos(e),
			p2x, p2y,
		)
	}
	r.x, r.y = x, y
}

// EncodePNG writes the canvas as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.dc.EncodePNG(w); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "encode png")
	}
	return nil
}

// PNG returns the canvas as PNG bytes.
func (r *Raster) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Close releases the canvas.
func (r *Raster) Close() error { return r.dc.Close() }

var colorKeywords = map[string]string{
	"black": "000000", "white": "ffffff", "red": "ff0000", "green": "008000",
	"blue": "0000ff", "yellow": "ffff00", "orange": "ffa500", "purple": "800080",
	"gray": "808080", "grey": "808080", "navy": "000080", "teal": "008080",
	"maroon": "800000",
}

// hexColor resolves a fill to a hex string. ok is false for transparent
// fills, which paint nothing.
func hexColor(c string) (string, bool) {
	lc := strings.ToLower(c)
	switch {
	case lc == "" || lc == "none" || lc == "transparent":
		return "", false
	case strings.HasPrefix(lc, "#"):
		return lc, true
	}
	if hex, ok := colorKeywords[lc]; ok {
		return hex, true
	}
	return "000000", true
}
