package styles

import (
	"github.com/matzehuels/qrsvg/pkg/render/qr/geom"
	"github.com/matzehuels/qrsvg/pkg/render/qr/shape"
)

var (
	Square = &Family{
		Name:        "square",
		Description: "filled box per cell; supports path mode",
		New:         func(g geom.Geometry) Drawer { return squareDrawer{g} },
	}
	Circle = &Family{
		Name:        "circle",
		Description: "dot per cell; supports path mode",
		New:         func(g geom.Geometry) Drawer { return circleDrawer{g} },
	}
	Blank = &Family{
		Name:        "blank",
		Description: "draws nothing",
		New:         func(geom.Geometry) Drawer { return blankDrawer{} },
	}
	Diamond = &Family{
		Name:        "diamond",
		Description: "box rotated by 45 degrees",
		New:         func(g geom.Geometry) Drawer { return diamondDrawer{g} },
	}
	RandomSquare = &Family{
		Name:        "random-square",
		Description: "diamond turned by a random angle per cell",
		Random:      true,
		New:         func(g geom.Geometry) Drawer { return randomSquareDrawer{g} },
	}
)

type squareDrawer struct{ g geom.Geometry }

func (d squareDrawer) Draw(m Module) []shape.Primitive {
	k := newKit(d.g, m.Coords)
	return []shape.Primitive{rectElem.draw(k)}
}

func (d squareDrawer) Fragment(m Module) shape.Path {
	return rectPath.draw(newKit(d.g, m.Coords)).Path
}

type circleDrawer struct{ g geom.Geometry }

func (d circleDrawer) Draw(m Module) []shape.Primitive {
	return []shape.Primitive{dot.draw(newKit(d.g, m.Coords))}
}

// Fragment traces the circle as two half arcs of radius BoxHalf.
func (d circleDrawer) Fragment(m Module) shape.Path {
	k := newKit(d.g, m.Coords)
	return shape.M(k.x0, k.yh).A(k.h, false, k.x1, k.yh).A(k.h, false, k.x0, k.yh).Z()
}

type blankDrawer struct{}

func (blankDrawer) Draw(Module) []shape.Primitive { return nil }

type diamondDrawer struct{ g geom.Geometry }

func (d diamondDrawer) Draw(m Module) []shape.Primitive {
	return []shape.Primitive{diamondPath.draw(newKit(d.g, m.Coords))}
}

func diamondPoints(k kit) []shape.Point {
	return []shape.Point{{X: k.x0, Y: k.yh}, {X: k.xh, Y: k.y0}, {X: k.x1, Y: k.yh}, {X: k.xh, Y: k.y1}}
}

type randomSquareDrawer struct{ g geom.Geometry }

// Draw rotates the diamond by an angle in [0, 360). A nil Rand leaves it
// unrotated.
func (d randomSquareDrawer) Draw(m Module) []shape.Primitive {
	k := newKit(d.g, m.Coords)
	angle := 0
	if m.Rand != nil {
		angle = m.Rand.IntN(360)
	}
	return []shape.Primitive{shape.NewPolygon(diamondPoints(k), angle, shape.Point{X: k.xh, Y: k.yh})}
}
