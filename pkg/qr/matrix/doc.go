// Package matrix holds the module grid that gets rendered.
//
// A [Matrix] is a rectangular grid of booleans plus the two layout numbers
// the renderer needs: the cell size in pixels and the quiet-zone width in
// cells. It satisfies the renderer's Grid interface, answering activity and
// neighbor queries with out-of-range cells treated as inactive.
//
// [Encode] produces a Matrix from text with github.com/skip2/go-qrcode. The
// encoder's own quiet zone is disabled; the border is applied at render
// time instead.
package matrix
