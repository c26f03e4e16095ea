// Package neighbor describes a cell's four-neighbor context and the
// predicates shape families use to pick a variant.
//
// A [Set] records which of the north, south, east and west cells are active.
// Each [Predicate] is a named boolean test over a Set. Predicates are declared
// in precedence order: corners, then axis blocks and ends, then isolation.
//
// A [Table] maps predicates to values of any type. [Table.Select] returns the
// value of the highest-precedence matching rule, so a cell that is both a
// top-left corner and fully isolated resolves to the isolation variant:
//
//	t := neighbor.NewTable(rect,
//	    neighbor.Rule[Shape]{When: neighbor.TopLeftCorner, Then: roundTL},
//	    neighbor.Rule[Shape]{When: neighbor.Alone, Then: dot},
//	)
//	t.Select(neighbor.Set{}) // dot
package neighbor
