package shape

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestPathString(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"square", M(d(40), d(40)).H(d(50)).V(d(50)).H(d(40)).Z(), "M40,40H50V50H40z"},
		{"arc", M(d(40), d(45)).A(d(5), false, d(50), d(45)), "M40,45A5,5 0 0 0 50,45"},
		{"sweep arc", M(d(0), d(0)).A(d(2.5), true, d(5), d(0)), "M0,0A2.5,2.5 0 0 1 5,0"},
		{"cubic", M(d(1), d(2)).C(d(1), d(1), d(1.5), d(1.5), d(1), d(1)), "M1,2C1,1 1.5,1.5 1,1"},
		{"line", M(d(0), d(5)).L(d(5), d(0)), "M0,5L5,0"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPathSharedPrefix(t *testing.T) {
	base := M(d(0), d(0)).H(d(10))
	a := base.V(d(10))
	b := base.V(d(20))

	if got := a.String(); got != "M0,0H10V10" {
		t.Errorf("a = %q, want M0,0H10V10", got)
	}
	if got := b.String(); got != "M0,0H10V20" {
		t.Errorf("b = %q, want M0,0H10V20", got)
	}
	if got := base.String(); got != "M0,0H10" {
		t.Errorf("base = %q, want M0,0H10", got)
	}
}

func TestPathWriteData(t *testing.T) {
	var b strings.Builder
	M(d(0), d(0)).H(d(1)).Z().WriteData(&b)
	M(d(5), d(5)).V(d(6)).Z().WriteData(&b)
	if got := b.String(); got != "M0,0H1zM5,5V6z" {
		t.Errorf("WriteData() = %q", got)
	}
}

func TestElement(t *testing.T) {
	tests := []struct {
		name string
		prim Primitive
		want string
	}{
		{
			"rect",
			NewRect(d(40), d(40), d(10), d(10)).WithFill("#000000"),
			`<rect x="40" y="40" width="10" height="10" fill="#000000"/>`,
		},
		{
			"rounded rect",
			NewRoundedRect(d(40), d(40), d(10), d(10), d(5)),
			`<rect x="40" y="40" width="10" height="10" rx="5" ry="5"/>`,
		},
		{
			"circle",
			NewCircle(d(45), d(45), d(2.5)).WithFill("red"),
			`<circle cx="45" cy="45" r="2.5" fill="red"/>`,
		},
		{
			"rotated polygon",
			NewPolygon([]Point{{d(40), d(45)}, {d(45), d(40)}, {d(50), d(45)}, {d(45), d(50)}}, 90, Point{d(45), d(45)}),
			`<polygon points="40,45 45,40 50,45 45,50" transform="rotate(90, 45, 45)"/>`,
		},
		{
			"path",
			NewPath(M(d(1), d(1)).H(d(2)).Z()).WithFill("#fff"),
			`<path d="M1,1H2z" fill="#fff"/>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.prim.Element(); got != tt.want {
				t.Errorf("Element() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	x, y, w, h, ok := NewCircle(d(45), d(45), d(5)).Bounds()
	if !ok {
		t.Fatal("Bounds() ok = false for circle")
	}
	for name, pair := range map[string][2]decimal.Decimal{
		"x": {x, d(40)}, "y": {y, d(40)}, "w": {w, d(10)}, "h": {h, d(10)},
	} {
		if !pair[0].Equal(pair[1]) {
			t.Errorf("%s = %s, want %s", name, pair[0], pair[1])
		}
	}

	if _, _, _, _, ok := NewPath(nil).Bounds(); ok {
		t.Error("Bounds() ok = true for path")
	}
}

func TestAsPath(t *testing.T) {
	tests := []struct {
		name string
		prim Primitive
		want string
	}{
		{"rect", NewRect(d(40), d(40), d(10), d(10)), "M40,40H50V50H40z"},
		{"circle", NewCircle(d(45), d(45), d(5)), "M40,45A5,5 0 0 0 50,45A5,5 0 0 0 40,45z"},
		{"polygon", NewPolygon([]Point{{d(0), d(1)}, {d(1), d(0)}, {d(2), d(1)}}, 0, Point{}), "M0,1L1,0L2,1z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.prim.AsPath().String(); got != tt.want {
				t.Errorf("AsPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{KindRect: "rect", KindCircle: "circle", KindPolygon: "polygon", KindPath: "path", Kind(9): "kind(9)"} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
