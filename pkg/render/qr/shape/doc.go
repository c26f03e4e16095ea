// Package shape defines the vector primitives emitted for each drawn cell.
//
// A [Primitive] is a tagged value: exactly one of its Rect, Circle, Polygon
// or Path fields is meaningful, selected by Kind. Coordinates are exact
// decimals in the pixel units of the input grid.
//
// [Path] is a structured list of path commands built by chaining:
//
//	p := shape.M(x0, y0).H(x1).V(y1).H(x0).Z()
//	p.String() // "M40,40H50V50H40z"
//
// Paths are values. Extending one never mutates another that shares its
// prefix.
package shape
