package shape

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Op is a path command letter.
type Op byte

const (
	OpMove  Op = 'M'
	OpLine  Op = 'L'
	OpHoriz Op = 'H'
	OpVert  Op = 'V'
	OpArc   Op = 'A'
	OpCubic Op = 'C'
	OpClose Op = 'z'
)

// Command is one absolute path command and its arguments.
//
// Argument layout per op:
//
//	M, L  x y
//	H     x
//	V     y
//	A     rx ry rotation large-arc sweep x y
//	C     x1 y1 x2 y2 x y
//	z     (none)
type Command struct {
	Op   Op
	Args []decimal.Decimal
}

// Path is an ordered list of commands.
type Path []Command

func (p Path) add(op Op, args ...decimal.Decimal) Path {
	return append(slices.Clip(p), Command{Op: op, Args: args})
}

// M starts a new path at (x, y).
func M(x, y decimal.Decimal) Path { return Path(nil).M(x, y) }

// M starts a new subpath at (x, y).
func (p Path) M(x, y decimal.Decimal) Path { return p.add(OpMove, x, y) }

// L draws a straight line to (x, y).
func (p Path) L(x, y decimal.Decimal) Path { return p.add(OpLine, x, y) }

// H draws a horizontal line to x.
func (p Path) H(x decimal.Decimal) Path { return p.add(OpHoriz, x) }

// V draws a vertical line to y.
func (p Path) V(y decimal.Decimal) Path { return p.add(OpVert, y) }

// A draws a circular arc of radius r to (x, y). sweep selects the
// positive-angle direction.
func (p Path) A(r decimal.Decimal, sweep bool, x, y decimal.Decimal) Path {
	s := decimal.Zero
	if sweep {
		s = decimal.NewFromInt(1)
	}
	return p.add(OpArc, r, r, decimal.Zero, decimal.Zero, s, x, y)
}

// C draws a cubic Bezier curve to (x, y) with control points (x1, y1) and
// (x2, y2).
func (p Path) C(x1, y1, x2, y2, x, y decimal.Decimal) Path {
	return p.add(OpCubic, x1, y1, x2, y2, x, y)
}

// Z closes the current subpath.
func (p Path) Z() Path { return p.add(OpClose) }

// WriteData appends the SVG path data of p to b.
func (p Path) WriteData(b *strings.Builder) { p.writeTo(b) }

// String renders the compact SVG path-data form.
func (p Path) String() string {
	var b strings.Builder
	p.writeTo(&b)
	return b.String()
}

func (p Path) writeTo(b *strings.Builder) {
	for _, c := range p {
		b.WriteByte(byte(c.Op))
		switch c.Op {
		case OpMove, OpLine:
			writePair(b, c.Args[0], c.Args[1])
		case OpHoriz, OpVert:
			b.WriteString(c.Args[0].String())
		case OpArc:
			writePair(b, c.Args[0], c.Args[1])
			for _, a := range c.Args[2:5] {
				b.WriteByte(' ')
				b.WriteString(a.String())
			}
			b.WriteByte(' ')
			writePair(b, c.Args[5], c.Args[6])
		case OpCubic:
			writePair(b, c.Args[0], c.Args[1])
			b.WriteByte(' ')
			writePair(b, c.Args[2], c.Args[3])
			b.WriteByte(' ')
			writePair(b, c.Args[4], c.Args[5])
		}
	}
}

func writePair(b *strings.Builder, x, y decimal.Decimal) {
	b.WriteString(x.String())
	b.WriteByte(',')
	b.WriteString(y.String())
}
