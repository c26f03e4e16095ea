package styles

import (
	"github.com/matzehuels/qrsvg/pkg/render/qr/neighbor"
	"github.com/matzehuels/qrsvg/pkg/render/qr/shape"
)

// Bars extend each box past its far edge into the next box so consecutive
// cells overlap into one stroke at any ratio.
var (
	barDown = pathVariant("bar", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.x1).V(k.y1.Add(k.reach)).H(k.x0).Z()
	})
	barRight = pathVariant("bar", func(k kit) shape.Path {
		return shape.M(k.x0, k.y0).H(k.x1.Add(k.reach)).V(k.y1).H(k.x0).Z()
	})
)

var VerticalBars = tableFamily("vertical-bars", "vertical strokes with round caps",
	neighbor.NewTable(barDown,
		rule(neighbor.TopEnd, pathVariant("cap-top", func(k kit) shape.Path {
			return shape.M(k.x0, k.yh).A(k.h, true, k.x1, k.yh).V(k.y1.Add(k.reach)).H(k.x0).Z()
		})),
		rule(neighbor.BottomEnd, pathVariant("cap-bottom", func(k kit) shape.Path {
			return shape.M(k.x0, k.y0).H(k.x1).V(k.yh).A(k.h, true, k.x0, k.yh).Z()
		})),
		rule(neighbor.AloneVertical, dot),
	))

var Vertical2Bars = tableFamily("vertical-2-bars", "vertical strokes with square ends",
	neighbor.NewTable(barDown,
		rule(neighbor.OpenBelow, rectPath),
		rule(neighbor.AloneVertical, rectPath),
	))

var HorizontalBars = tableFamily("horizontal-bars", "horizontal strokes with round caps",
	neighbor.NewTable(barRight,
		rule(neighbor.LeftEnd, pathVariant("cap-left", func(k kit) shape.Path {
			return shape.M(k.xh, k.y0).H(k.x1.Add(k.reach)).V(k.y1).H(k.xh).A(k.h, true, k.xh, k.y0).Z()
		})),
		rule(neighbor.RightEnd, pathVariant("cap-right", func(k kit) shape.Path {
			return shape.M(k.x0, k.y0).H(k.xh).A(k.h, true, k.xh, k.y1).H(k.x0).Z()
		})),
		rule(neighbor.AloneHorizontal, dot),
	))

var Horizontal2Bars = tableFamily("horizontal-2-bars", "horizontal strokes with square ends",
	neighbor.NewTable(barRight,
		rule(neighbor.OpenRight, rectPath),
		rule(neighbor.AloneHorizontal, rectPath),
	))
