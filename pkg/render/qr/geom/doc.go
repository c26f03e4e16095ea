// Package geom derives the per-cell drawing coordinates used by every shape
// family.
//
// # Geometry
//
// A [Geometry] is computed once per rendering pass from the cell size (in
// pixels) and the size ratio. The ratio shrinks the drawn box inside its cell
// and centers it:
//
//	box   = cell * ratio
//	half  = box / 2
//	delta = (1 - ratio) * cell / 2
//
// [Geometry.Coords] turns a cell's pixel origin into the six reference
// values X0, Y0 (top-left of the box), X1, Y1 (bottom-right) and XH, YH
// (center). All values are exact decimals so that adjacent cells at ratio 1
// share their boundary coordinate bit for bit.
//
// # Eye regions
//
// [Eyes] classifies a cell's pixel origin as part of a finder pattern's outer
// ring, its center, or ordinary data. The classification feeds optional eye
// coloring in the renderer; shape families themselves ignore it.
package geom
