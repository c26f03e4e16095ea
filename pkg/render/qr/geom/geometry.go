package geom

import (
	"github.com/shopspring/decimal"

	"github.com/matzehuels/qrsvg/pkg/errors"
)

var (
	one = decimal.NewFromInt(1)
	two = decimal.NewFromInt(2)
)

// DefaultRatio draws every box at full cell size.
var DefaultRatio = one

// Geometry holds the constants shared by every cell of a rendering pass.
type Geometry struct {
	CellSize int             // Cell edge in pixels
	Ratio    decimal.Decimal // Fraction of the cell covered by the box, in (0, 1]
	BoxSize  decimal.Decimal // cell * ratio
	BoxHalf  decimal.Decimal // BoxSize / 2
	BoxDelta decimal.Decimal // Inset from the cell edge to the box edge
}

// Coords are the reference points of one cell's box.
type Coords struct {
	X0, Y0 decimal.Decimal // Top-left
	X1, Y1 decimal.Decimal // Bottom-right
	XH, YH decimal.Decimal // Center
}

// NewGeometry validates the inputs and precomputes the box constants.
// A ratio outside (0, 1] yields an ErrCodeInvalidSizeRatio error.
func NewGeometry(cellSize int, ratio decimal.Decimal) (Geometry, error) {
	if cellSize <= 0 {
		return Geometry{}, errors.New(errors.ErrCodeInvalidInput, "cell size must be positive, got %d", cellSize)
	}
	if err := ValidateRatio(ratio); err != nil {
		return Geometry{}, err
	}
	cell := decimal.NewFromInt(int64(cellSize))
	box := cell.Mul(ratio)
	return Geometry{
		CellSize: cellSize,
		Ratio:    ratio,
		BoxSize:  box,
		BoxHalf:  box.Div(two),
		BoxDelta: one.Sub(ratio).Mul(cell).Div(two),
	}, nil
}

// ValidateRatio reports whether ratio lies in (0, 1].
func ValidateRatio(ratio decimal.Decimal) error {
	if !ratio.IsPositive() || ratio.GreaterThan(one) {
		return errors.New(errors.ErrCodeInvalidSizeRatio, "size ratio must be in (0, 1], got %s", ratio)
	}
	return nil
}

// ParseRatio parses a decimal string such as "0.8" and validates it.
func ParseRatio(s string) (decimal.Decimal, error) {
	r, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, errors.Wrap(errors.ErrCodeInvalidSizeRatio, err, "parse size ratio %q", s)
	}
	if err := ValidateRatio(r); err != nil {
		return decimal.Decimal{}, err
	}
	return r, nil
}

// Coords computes the box reference points for the cell whose top-left
// pixel is (x, y).
func (g Geometry) Coords(x, y int) Coords {
	x0 := decimal.NewFromInt(int64(x)).Add(g.BoxDelta)
	y0 := decimal.NewFromInt(int64(y)).Add(g.BoxDelta)
	return Coords{
		X0: x0,
		Y0: y0,
		X1: x0.Add(g.BoxSize),
		Y1: y0.Add(g.BoxSize),
		XH: x0.Add(g.BoxHalf),
		YH: y0.Add(g.BoxHalf),
	}
}

// ArcRadius is the radius of half-round caps, notches and path-mode dots.
func (g Geometry) ArcRadius() decimal.Decimal {
	return g.BoxHalf
}

// BarReach is how far a bar segment runs past its own box: across the gap
// between boxes and halfway into the next one.
func (g Geometry) BarReach() decimal.Decimal {
	return g.BoxDelta.Mul(two).Add(g.BoxHalf)
}

// CornerRadius is the radius of quarter-round corners.
func (g Geometry) CornerRadius() decimal.Decimal {
	return g.BoxSize
}
