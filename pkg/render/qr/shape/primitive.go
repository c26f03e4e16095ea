package shape

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind tags which variant of a Primitive is populated.
type Kind int

const (
	KindRect Kind = iota
	KindCircle
	KindPolygon
	KindPath
)

func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindCircle:
		return "circle"
	case KindPolygon:
		return "polygon"
	case KindPath:
		return "path"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Point is a 2D coordinate.
type Point struct {
	X, Y decimal.Decimal
}

// Rect is an axis-aligned rectangle with optional corner radius.
type Rect struct {
	X, Y, W, H decimal.Decimal
	RX         decimal.Decimal // Corner radius; zero for sharp corners
}

// Circle is a circle given by center and radius.
type Circle struct {
	CX, CY, R decimal.Decimal
}

// Polygon is a closed polyline, optionally rotated about a pivot.
type Polygon struct {
	Points []Point
	Rotate int   // Degrees, clockwise in SVG's y-down space
	Pivot  Point // Center of rotation
}

// Primitive is one emitted shape. Kind selects the populated variant.
type Primitive struct {
	Kind    Kind
	Fill    string
	Rect    Rect
	Circle  Circle
	Polygon Polygon
	Path    Path
}

// NewRect returns a rectangle primitive.
func NewRect(x, y, w, h decimal.Decimal) Primitive {
	return Primitive{Kind: KindRect, Rect: Rect{X: x, Y: y, W: w, H: h}}
}

// NewRoundedRect returns a rectangle primitive with corner radius rx.
func NewRoundedRect(x, y, w, h, rx decimal.Decimal) Primitive {
	return Primitive{Kind: KindRect, Rect: Rect{X: x, Y: y, W: w, H: h, RX: rx}}
}

// NewCircle returns a circle primitive.
func NewCircle(cx, cy, r decimal.Decimal) Primitive {
	return Primitive{Kind: KindCircle, Circle: Circle{CX: cx, CY: cy, R: r}}
}

// NewPolygon returns a polygon primitive rotated by deg about pivot.
func NewPolygon(points []Point, deg int, pivot Point) Primitive {
	return Primitive{Kind: KindPolygon, Polygon: Polygon{Points: points, Rotate: deg, Pivot: pivot}}
}

// NewPath returns a path primitive.
func NewPath(p Path) Primitive {
	return Primitive{Kind: KindPath, Path: p}
}

// WithFill returns a copy of p painted with color.
func (p Primitive) WithFill(color string) Primitive {
	p.Fill = color
	return p
}

// Bounds returns the axis-aligned bounding box of rect and circle
// primitives. ok is false for polygons and paths.
func (p Primitive) Bounds() (x, y, w, h decimal.Decimal, ok bool) {
	switch p.Kind {
	case KindRect:
		return p.Rect.X, p.Rect.Y, p.Rect.W, p.Rect.H, true
	case KindCircle:
		d := p.Circle.R.Add(p.Circle.R)
		return p.Circle.CX.Sub(p.Circle.R), p.Circle.CY.Sub(p.Circle.R), d, d, true
	}
	return decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, false
}

// Element renders the primitive as a single SVG element.
func (p Primitive) Element() string {
	var b strings.Builder
	switch p.Kind {
	case KindRect:
		r := p.Rect
		fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s"`, r.X, r.Y, r.W, r.H)
		if !r.RX.IsZero() {
			fmt.Fprintf(&b, ` rx="%s" ry="%s"`, r.RX, r.RX)
		}
	case KindCircle:
		c := p.Circle
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s"`, c.CX, c.CY, c.R)
	case KindPolygon:
		b.WriteString(`<polygon points="`)
		for i, pt := range p.Polygon.Points {
			if i > 0 {
				b.WriteByte(' ')
			}
			writePair(&b, pt.X, pt.Y)
		}
		b.WriteByte('"')
		if p.Polygon.Rotate != 0 {
			fmt.Fprintf(&b, ` transform="rotate(%d, %s, %s)"`, p.Polygon.Rotate, p.Polygon.Pivot.X, p.Polygon.Pivot.Y)
		}
	case KindPath:
		b.WriteString(`<path d="`)
		p.Path.writeTo(&b)
		b.WriteByte('"')
	}
	if p.Fill != "" {
		fmt.Fprintf(&b, ` fill="%s"`, p.Fill)
	}
	b.WriteString("/>")
	return b.String()
}

// AsPath converts the primitive to an equivalent path outline. Rounded
// rectangles and circles use arcs; polygon rotation is not applied.
func (p Primitive) AsPath() Path {
	switch p.Kind {
	case KindRect:
		r := p.Rect
		x1, y1 := r.X.Add(r.W), r.Y.Add(r.H)
		if r.RX.IsZero() {
			return M(r.X, r.Y).H(x1).V(y1).H(r.X).Z()
		}
		rx := r.RX
		return M(r.X.Add(rx), r.Y).H(x1.Sub(rx)).A(rx, true, x1, r.Y.Add(rx)).
			V(y1.Sub(rx)).A(rx, true, x1.Sub(rx), y1).
			H(r.X.Add(rx)).A(rx, true, r.X, y1.Sub(rx)).
			V(r.Y.Add(rx)).A(rx, true, r.X.Add(rx), r.Y).Z()
	case KindCircle:
		c := p.Circle
		left, right := c.CX.Sub(c.R), c.CX.Add(c.R)
		return M(left, c.CY).A(c.R, false, right, c.CY).A(c.R, false, left, c.CY).Z()
	case KindPolygon:
		var path Path
		for i, pt := range p.Polygon.Points {
			if i == 0 {
				path = M(pt.X, pt.Y)
				continue
			}
			path = path.L(pt.X, pt.Y)
		}
		return path.Z()
	}
	return p.Path
}
