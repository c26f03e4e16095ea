package matrix

import (
	"testing"

	"github.com/matzehuels/qrsvg/pkg/errors"
	"github.com/matzehuels/qrsvg/pkg/render/qr/neighbor"
)

func plus(t *testing.T) *Matrix {
	t.Helper()
	m, err := New([][]bool{
		{false, true, false},
		{true, true, true},
		{false, true, false},
	}, 10, 4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		modules [][]bool
		box     int
		border  int
	}{
		{"empty", nil, 10, 4},
		{"empty row", [][]bool{{}}, 10, 4},
		{"ragged", [][]bool{{true, false}, {true}}, 10, 4},
		{"zero box", [][]bool{{true}}, 0, 4},
		{"negative border", [][]bool{{true}}, 10, -1},
		{"huge box", [][]bool{{true}}, 1 << 40, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.modules, tt.box, tt.border)
			if !errors.Is(err, errors.ErrCodeInvalidMatrix) {
				t.Errorf("New() error = %v, want INVALID_MATRIX", err)
			}
		})
	}
}

func TestNewCanvasLimit(t *testing.T) {
	grid := make([][]bool, 21)
	for i := range grid {
		grid[i] = make([]bool, 21)
	}
	// (21 + 2*4) * 282 = 8178 fits, 283 does not.
	if _, err := New(grid, 282, 4); err != nil {
		t.Errorf("New(box 282) error = %v", err)
	}
	if _, err := New(grid, 283, 4); !errors.Is(err, errors.ErrCodeInvalidMatrix) {
		t.Errorf("New(box 283) error = %v, want INVALID_MATRIX", err)
	}
}

func TestNewCopiesInput(t *testing.T) {
	src := [][]bool{{true}}
	m, _ := New(src, 1, 0)
	src[0][0] = false
	if !m.Active(0, 0) {
		t.Error("Matrix shares storage with its input")
	}
}

func TestNeighbors(t *testing.T) {
	m := plus(t)
	tests := []struct {
		row, col int
		want     neighbor.Set
	}{
		{1, 1, neighbor.Set{N: true, S: true, E: true, W: true}},
		{0, 1, neighbor.Set{S: true}},
		{1, 0, neighbor.Set{E: true}},
		{2, 1, neighbor.Set{N: true}},
		{0, 0, neighbor.Set{S: true, E: true}},
	}
	for _, tt := range tests {
		if got := m.Neighbors(tt.row, tt.col); got != tt.want {
			t.Errorf("Neighbors(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestActiveOutOfRange(t *testing.T) {
	m := plus(t)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		if m.Active(p[0], p[1]) {
			t.Errorf("Active(%d, %d) = true", p[0], p[1])
		}
	}
}

func TestLayout(t *testing.T) {
	m := plus(t)
	if got := m.PixelSize(); got != 110 {
		t.Errorf("PixelSize() = %d, want 110", got)
	}
	if x, y := m.PixelOrigin(1, 2); x != 60 || y != 50 {
		t.Errorf("PixelOrigin(1, 2) = (%d, %d), want (60, 50)", x, y)
	}
	if got := m.Count(); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}

	wide, err := m.WithLayout(2, 0)
	if err != nil {
		t.Fatalf("WithLayout() error = %v", err)
	}
	if wide.PixelSize() != 6 {
		t.Errorf("PixelSize() = %d, want 6", wide.PixelSize())
	}
	if wide.Digest() != m.Digest() {
		t.Error("Digest() depends on layout")
	}
}

func TestString(t *testing.T) {
	if got, want := plus(t).String(), ".#.\n###\n.#.\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestEncode(t *testing.T) {
	m, err := Encode("https://example.com", LevelMedium, 10, 4)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	rows, cols := m.Size()
	if rows != cols || rows < 21 || (rows-21)%4 != 0 {
		t.Errorf("Size() = %dx%d, want a QR symbol size", rows, cols)
	}

	// Finder pattern: the top-left 7x7 ring is dark, its inner ring light.
	for i := range 7 {
		if !m.Active(0, i) || !m.Active(i, 0) {
			t.Fatalf("finder ring not dark at index %d", i)
		}
	}
	if m.Active(1, 1) || !m.Active(3, 3) {
		t.Error("finder pattern interior malformed")
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := Encode("", LevelLow, 10, 4); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Encode(\"\") error = %v, want INVALID_INPUT", err)
	}
	if _, err := Encode("x", Level("Z"), 10, 4); !errors.Is(err, errors.ErrCodeInvalidLevel) {
		t.Errorf("Encode(level Z) error = %v, want INVALID_LEVEL", err)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"l": LevelLow, "M": LevelMedium, " q ": LevelQuartile, "H": LevelHigh} {
		if got, err := ParseLevel(in); err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("X"); err == nil {
		t.Error("ParseLevel(X) succeeded")
	}
}
