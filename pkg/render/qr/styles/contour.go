package styles

import (
	"github.com/matzehuels/qrsvg/pkg/render/qr/neighbor"
	"github.com/matzehuels/qrsvg/pkg/render/qr/shape"
)

func contour(name, desc string, base variant, groups ...[]neighbor.Rule[variant]) *Family {
	return tableFamily(name, desc, contourTable(base, groups...))
}

func contourTable(base variant, groups ...[]neighbor.Rule[variant]) neighbor.Table[variant] {
	var rules []neighbor.Rule[variant]
	for _, g := range groups {
		rules = append(rules, g...)
	}
	return neighbor.NewTable(base, rules...)
}

func alone(v variant) []neighbor.Rule[variant] {
	return []neighbor.Rule[variant]{rule(neighbor.Alone, v)}
}

// Straight chevrons to the far corner.
var sharpBlocks = []neighbor.Rule[variant]{
	rule(neighbor.TopBlock, pathVariant("slant-top", func(k kit) shape.Path {
		return shape.M(k.x0, k.yh).L(k.x1, k.y0).V(k.y1).H(k.x0).Z()
	})),
	rule(neighbor.BottomBlock, pathVariant("slant-bottom", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.x1).V(k.yh).L(k.x0, k.y1).Z()
	})),
	rule(neighbor.LeftBlock, pathVariant("slant-left", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.x1).V(k.y1).H(k.xh).L(k.xh, k.y0).Z()
	})),
	rule(neighbor.RightBlock, pathVariant("slant-right", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.xh).L(k.x1, k.y1).H(k.x0).Z()
	})),
}

// Symmetric points on the open side.
var sharp2Blocks = []neighbor.Rule[variant]{
	rule(neighbor.TopBlock, pathVariant("point-top", func(k kit) shape.Path {
		return shape.M(k.x0, k.yh).L(k.xh, k.y0).L(k.x1, k.yh).V(k.y1).H(k.x0).Z()
	})),
	rule(neighbor.BottomBlock, pathVariant("point-bottom", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.x1).V(k.yh).L(k.xh, k.y1).L(k.x0, k.yh).V(k.y0).Z()
	})),
	rule(neighbor.LeftBlock, pathVariant("point-left", func(k kit) shape.Path {
		return shape.M(k.xh, k.y0).H(k.x1).V(k.y1).H(k.xh).L(k.x0, k.yh).L(k.xh, k.y0).Z()
	})),
	rule(neighbor.RightBlock, pathVariant("point-right", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.xh).L(k.x1, k.yh).L(k.xh, k.y1).H(k.x0).Z()
	})),
}

// V-shaped notches reaching the cell center.
var sharp2InvertedBlocks = []neighbor.Rule[variant]{
	rule(neighbor.TopBlock, pathVariant("vee-top", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).L(k.xh, k.yh).L(k.x1, k.y0).V(k.y1).H(k.x0).Z()
	})),
	rule(neighbor.BottomBlock, pathVariant("vee-bottom", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.x1).V(k.y1).L(k.xh, k.yh).L(k.x0, k.y1).Z()
	})),
	rule(neighbor.LeftBlock, pathVariant("vee-left", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.x1).V(k.y1).H(k.x0).L(k.xh, k.yh).L(k.x0, k.y0).Z()
	})),
	rule(neighbor.RightBlock, pathVariant("vee-right", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.x1).L(k.xh, k.yh).L(k.x1, k.y1).H(k.x0).Z()
	})),
}

// Like sharpBlocks, but the left chevron runs to the top-left corner.
var sharpRoundedBlocks = []neighbor.Rule[variant]{
	sharpBlocks[0],
	sharpBlocks[1],
	rule(neighbor.LeftBlock, pathVariant("slant-left", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.x1).V(k.y1).H(k.xh).L(k.x0, k.y0).Z()
	})),
	sharpBlocks[3],
}

// Cusped tips drawn with two cubic curves through the cell center.
var curveBlocks = []neighbor.Rule[variant]{
	rule(neighbor.TopBlock, pathVariant("cusp-top", func(k kit) shape.Path {
		return shape.M(k.x1, k.y1).H(k.x0).
			C(k.x0, k.y0, k.xh, k.yh, k.x0, k.y0).
			C(k.x0, k.y0, k.x1, k.y0, k.x1, k.y1).Z()
	})),
	rule(neighbor.BottomBlock, pathVariant("cusp-bottom", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.x1).
			C(k.x1, k.y1, k.xh, k.yh, k.x1, k.y1).
			C(k.x1, k.y1, k.x0, k.y1, k.x0, k.y0).Z()
	})),
	rule(neighbor.LeftBlock, pathVariant("cusp-left", func(k kit) shape.Path {
		return shape.M(k.x1, k.y0).V(k.y1).
			C(k.x0, k.y1, k.xh, k.yh, k.x0, k.y1).
			C(k.x0, k.y1, k.x0, k.y0, k.x1, k.y0).Z()
	})),
	rule(neighbor.RightBlock, pathVariant("cusp-right", func(k kit) shape.Path {
		return shape.M(k.x0, k.y1).V(k.y0).
			C(k.x0, k.y0, k.xh, k.yh, k.x1, k.y0).
			C(k.x1, k.y0, k.x1, k.y1, k.x0, k.y1).Z()
	})),
}

// Tables shared by the rounded families. Derived families replace the
// block or isolated-cell rules of their parent.
var (
	roundedTable  = contourTable(rectPath, roundedCorners, roundedBlocks, alone(dot))
	rounded2Table = roundedTable.With(alone(pill)...)
)

var (
	Rounded = tableFamily("rounded", "round corners and caps, isolated cells as dots",
		roundedTable)
	Rounded2 = tableFamily("rounded-2", "round corners and caps, isolated cells as rounded squares",
		rounded2Table)
	Rounded2Inverted = contour("rounded-2-inverted", "concave notches on open sides",
		rectPath, invertedBlocks, alone(rectElem))
	Rounded2Inverted2 = tableFamily("rounded-2-inverted-2", "round corners with concave notches",
		rounded2Table.With(invertedBlocks...))

	Sharp = contour("sharp", "slanted ends on open sides",
		rectPath, sharpBlocks)
	Sharp2 = contour("sharp-2", "pointed ends on open sides",
		rectPath, sharp2Blocks)
	Sharp2Inverted = contour("sharp-2-inverted", "V notches on open sides",
		rectPath, sharp2InvertedBlocks, alone(rectElem))
	Sharp2Inverted2 = tableFamily("sharp-2-inverted-2", "round corners with V notches",
		rounded2Table.With(sharp2InvertedBlocks...))

	SharpRounded = tableFamily("sharp-rounded", "round corners with slanted ends",
		rounded2Table.With(sharpRoundedBlocks...))
	SharpRounded2 = tableFamily("sharp-rounded-2", "round corners with cusped ends",
		roundedTable.With(curveBlocks...))
	Sharp2Diamond = contour("sharp-2-diamond", "cut corners with pointed ends",
		rectPath, diamondCorners, sharp2Blocks, alone(diamondPath))
	Sharp2Rounded = tableFamily("sharp-2-rounded", "round corners with pointed ends",
		rounded2Table.With(sharp2Blocks...))

	SomeHeart = contour("some-heart", "round caps without corner rounding",
		rectPath, roundedBlocks, alone(dot))
)
