package styles

import (
	"github.com/shopspring/decimal"

	"github.com/matzehuels/qrsvg/pkg/render/qr/geom"
	"github.com/matzehuels/qrsvg/pkg/render/qr/neighbor"
	"github.com/matzehuels/qrsvg/pkg/render/qr/shape"
)

// kit gathers the values every variant recipe reads.
type kit struct {
	x0, y0, x1, y1, xh, yh decimal.Decimal
	size, half             decimal.Decimal
	h                      decimal.Decimal // edge arc radius
	r                      decimal.Decimal // corner arc radius
	reach                  decimal.Decimal // bar overhang past the box
}

func newKit(g geom.Geometry, c geom.Coords) kit {
	return kit{
		x0: c.X0, y0: c.Y0, x1: c.X1, y1: c.Y1, xh: c.XH, yh: c.YH,
		size:  g.BoxSize,
		half:  g.BoxHalf,
		h:     g.ArcRadius(),
		r:     g.CornerRadius(),
		reach: g.BarReach(),
	}
}

// variant is one named recipe.
type variant struct {
	name string
	draw func(k kit) shape.Primitive
}

func pathVariant(name string, f func(k kit) shape.Path) variant {
	return variant{name: name, draw: func(k kit) shape.Primitive { return shape.NewPath(f(k)) }}
}

// tableDrawer draws each cell with the variant its neighbor table selects.
type tableDrawer struct {
	g     geom.Geometry
	table neighbor.Table[variant]
}

func (d tableDrawer) Draw(m Module) []shape.Primitive {
	v := d.table.Select(m.Neighbors)
	return []shape.Primitive{v.draw(newKit(d.g, m.Coords))}
}

func (d tableDrawer) Variant(s neighbor.Set) string {
	return d.table.Select(s).name
}

func (d tableDrawer) Rule(s neighbor.Set) string {
	if p, ok := d.table.Match(s); ok {
		return p.String()
	}
	return baseRule
}

func tableFamily(name, desc string, t neighbor.Table[variant]) *Family {
	return &Family{
		Name:        name,
		Description: desc,
		Neighbors:   true,
		New:         func(g geom.Geometry) Drawer { return tableDrawer{g: g, table: t} },
	}
}

func rule(p neighbor.Predicate, v variant) neighbor.Rule[variant] {
	return neighbor.Rule[variant]{When: p, Then: v}
}

// Shared variants.
var (
	rectPath = pathVariant("rect", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.x1).V(k.y1).H(k.x0).Z()
	})
	rectElem = variant{"square", func(k kit) shape.Primitive {
		return shape.NewRect(k.x0, k.y0, k.size, k.size)
	}}
	dot = variant{"circle", func(k kit) shape.Primitive {
		return shape.NewCircle(k.xh, k.yh, k.half)
	}}
	pill = variant{"rounded-square", func(k kit) shape.Primitive {
		return shape.NewRoundedRect(k.x0, k.y0, k.size, k.size, k.half)
	}}
	diamondPath = pathVariant("diamond", func(k kit) shape.Path {
		return shape.M(k.x0, k.yh).L(k.xh, k.y0).L(k.x1, k.yh).L(k.xh, k.y1).Z()
	})
)

// Quarter-round corners of radius r.
var roundedCorners = []neighbor.Rule[variant]{
	rule(neighbor.TopLeftCorner, pathVariant("round-top-left", func(k kit) shape.Path {
		return shape.M(k.x0, k.yh).A(k.r, true, k.x1, k.y0).V(k.y1).H(k.x0).Z()
	})),
	rule(neighbor.TopRightCorner, pathVariant("round-top-right", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.xh).A(k.r, true, k.x1, k.y1).H(k.x0).Z()
	})),
	rule(neighbor.BottomLeftCorner, pathVariant("round-bottom-left", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.x1).V(k.y1).H(k.xh).A(k.r, true, k.x0, k.y0).Z()
	})),
	rule(neighbor.BottomRightCorner, pathVariant("round-bottom-right", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.x1).V(k.yh).A(k.r, true, k.xh, k.y1).H(k.x0).Z()
	})),
}

// Chamfered corners cut at the edge midpoints.
var diamondCorners = []neighbor.Rule[variant]{
	rule(neighbor.TopLeftCorner, pathVariant("cut-top-left", func(k kit) shape.Path {
		return shape.M(k.x0, k.yh).L(k.xh, k.y0).H(k.x1).V(k.y1).H(k.x0).Z()
	})),
	rule(neighbor.TopRightCorner, pathVariant("cut-top-right", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.xh).L(k.x1, k.yh).V(k.y1).H(k.x0).Z()
	})),
	rule(neighbor.BottomLeftCorner, pathVariant("cut-bottom-left", func(k kit) shape.Path {
		return shape.M(k.xh, k.y0).H(k.x1).V(k.y1).H(k.xh).L(k.x0, k.yh).V(k.y0).Z()
	})),
	rule(neighbor.BottomRightCorner, pathVariant("cut-bottom-right", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.x1).V(k.yh).L(k.xh, k.y1).H(k.x0).Z()
	})),
}

// Half-round caps on the open side of a single-neighbor cell.
var roundedBlocks = []neighbor.Rule[variant]{
	rule(neighbor.TopBlock, pathVariant("round-top", func(k kit) shape.Path {
		return shape.M(k.x0, k.yh).A(k.h, true, k.x1, k.yh).V(k.y1).H(k.x0).Z()
	})),
	rule(neighbor.BottomBlock, pathVariant("round-bottom", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.x1).V(k.yh).A(k.h, true, k.x0, k.yh).Z()
	})),
	rule(neighbor.LeftBlock, pathVariant("round-left", func(k kit) shape.Path {
		return shape.M(k.xh, k.y0).H(k.x1).V(k.y1).H(k.xh).A(k.h, true, k.xh, k.y0).Z()
	})),
	rule(neighbor.RightBlock, pathVariant("round-right", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.xh).A(k.h, true, k.xh, k.y1).H(k.x0).Z()
	})),
}

// Concave notches on the open side of a single-neighbor cell.
var invertedBlocks = []neighbor.Rule[variant]{
	rule(neighbor.TopBlock, pathVariant("notch-top", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).A(k.h, false, k.x1, k.y0).V(k.y1).H(k.x0).Z()
	})),
	rule(neighbor.BottomBlock, pathVariant("notch-bottom", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.x1).V(k.y1).A(k.h, false, k.x0, k.y1).Z()
	})),
	rule(neighbor.LeftBlock, pathVariant("notch-left", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.x1).V(k.y1).H(k.x0).A(k.h, false, k.x0, k.y0).Z()
	})),
	rule(neighbor.RightBlock, pathVariant("notch-right", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.x1).A(k.h, false, k.x1, k.y1).H(k.x0).Z()
	})),
}
