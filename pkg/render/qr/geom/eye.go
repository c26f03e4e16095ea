package geom

// Region is the part of the symbol a cell belongs to.
type Region int

const (
	RegionData      Region = iota // Ordinary data or timing module
	RegionEyeOuter                // Outer ring of a finder pattern
	RegionEyeCenter               // 3x3 center of a finder pattern
)

func (r Region) String() string {
	switch r {
	case RegionEyeOuter:
		return "eye-outer"
	case RegionEyeCenter:
		return "eye-center"
	default:
		return "data"
	}
}

// Eyes locates the three finder patterns of a symbol. All fields are in
// pixels except Border, which counts quiet-zone cells.
type Eyes struct {
	Border    int // Quiet zone width in cells
	BoxSize   int // Cell edge in pixels
	PixelSize int // Full image edge in pixels, quiet zone included
}

// IsOuter reports whether the cell at pixel (row, col) lies in the 8x8 area
// around the top-left, top-right or bottom-left finder pattern.
func (e Eyes) IsOuter(row, col int) bool {
	lim := e.Border*e.BoxSize + 8*e.BoxSize
	w := e.PixelSize
	return (row < lim && col < lim) ||
		(row < lim && col > w-lim) ||
		(row > w-lim && col < lim)
}

// IsCenter reports whether the cell at pixel (row, col) lies in the center
// of one of the finder patterns.
func (e Eyes) IsCenter(row, col int) bool {
	bw := e.Border * e.BoxSize
	lo := bw + e.BoxSize
	in := bw + 5*e.BoxSize
	w := e.PixelSize
	hi := w - bw - 2*e.BoxSize

	nearTop := lo < row && row < in
	nearLeft := lo < col && col < in
	nearBottom := w-in <= row && row < hi
	nearRight := w-in <= col && col < hi

	return (nearTop && nearLeft) || (nearTop && nearRight) || (nearBottom && nearLeft)
}

// Classify returns the region of the cell at pixel (row, col). Center takes
// precedence over outer.
func (e Eyes) Classify(row, col int) Region {
	switch {
	case e.IsCenter(row, col):
		return RegionEyeCenter
	case e.IsOuter(row, col):
		return RegionEyeOuter
	default:
		return RegionData
	}
}
