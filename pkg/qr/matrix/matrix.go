package matrix

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/matzehuels/qrsvg/pkg/errors"
	"github.com/matzehuels/qrsvg/pkg/render/qr/neighbor"
)

const (
	DefaultBoxSize = 10
	DefaultBorder  = 4

	// MaxPixelSize bounds the canvas edge of any grid.
	MaxPixelSize = 8192
)

// Matrix is an immutable module grid.
type Matrix struct {
	modules [][]bool
	rows    int
	cols    int
	box     int
	border  int
}

// New validates modules and wraps them. The grid is copied.
func New(modules [][]bool, box, border int) (*Matrix, error) {
	if len(modules) == 0 || len(modules[0]) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidMatrix, "matrix is empty")
	}
	if box <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidMatrix, "box size must be positive, got %d", box)
	}
	if border < 0 {
		return nil, errors.New(errors.ErrCodeInvalidMatrix, "border must not be negative, got %d", border)
	}

	cols := len(modules[0])
	if box > MaxPixelSize || border > MaxPixelSize ||
		(max(len(modules), cols)+2*border)*box > MaxPixelSize {
		return nil, errors.New(errors.ErrCodeInvalidMatrix,
			"canvas exceeds %d pixels (%dx%d modules, box %d, border %d)", MaxPixelSize, len(modules), cols, box, border)
	}
	grid := make([][]bool, len(modules))
	for i, row := range modules {
		if len(row) != cols {
			return nil, errors.New(errors.ErrCodeInvalidMatrix, "row %d has %d modules, want %d", i, len(row), cols)
		}
		grid[i] = append([]bool(nil), row...)
	}
	return &Matrix{modules: grid, rows: len(grid), cols: cols, box: box, border: border}, nil
}

// Size returns the number of rows and columns.
func (m *Matrix) Size() (rows, cols int) { return m.rows, m.cols }

// Active reports whether the module at (row, col) is dark. Out-of-range
// positions are inactive.
func (m *Matrix) Active(row, col int) bool {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return false
	}
	return m.modules[row][col]
}

// Neighbors returns the activity of the four orthogonal neighbors.
func (m *Matrix) Neighbors(row, col int) neighbor.Set {
	return neighbor.Set{
		N: m.Active(row-1, col),
		S: m.Active(row+1, col),
		E: m.Active(row, col+1),
		W: m.Active(row, col-1),
	}
}

func (m *Matrix) BoxSize() int { return m.box }
func (m *Matrix) Border() int  { return m.border }

// PixelSize is the edge of the square canvas, quiet zone included.
func (m *Matrix) PixelSize() int {
	return (max(m.rows, m.cols) + 2*m.border) * m.box
}

// PixelOrigin returns the top-left pixel of the cell at (row, col).
func (m *Matrix) PixelOrigin(row, col int) (x, y int) {
	return (col + m.border) * m.box, (row + m.border) * m.box
}

// WithLayout returns a copy sharing the modules with a different box size
// and border.
func (m *Matrix) WithLayout(box, border int) (*Matrix, error) {
	return New(m.modules, box, border)
}

// Modules returns a copy of the grid.
func (m *Matrix) Modules() [][]bool {
	out := make([][]bool, m.rows)
	for i, row := range m.modules {
		out[i] = append([]bool(nil), row...)
	}
	return out
}

// Count returns the number of active modules.
func (m *Matrix) Count() int {
	n := 0
	for _, row := range m.modules {
		for _, on := range row {
			if on {
				n++
			}
		}
	}
	return n
}

// String draws the grid with '#' for active and '.' for inactive modules.
func (m *Matrix) String() string {
	var b strings.Builder
	for _, row := range m.modules {
		for _, on := range row {
			if on {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Digest identifies the grid content independent of box size and border.
func (m *Matrix) Digest() string {
	sum := sha256.Sum256([]byte(m.String()))
	return hex.EncodeToString(sum[:])
}
