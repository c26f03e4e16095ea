// Package styles provides the shape families that turn one active cell into
// vector primitives.
//
// # Families
//
// Every family is a [Family] entry in [All]. Its New function receives the
// pass-wide [geom.Geometry] and returns a [Drawer]. Families fall into three
// groups:
//
//   - Fixed shapes (square, circle, diamond, random-square, blank) ignore the
//     neighbor context.
//   - Bar families (vertical-bars, horizontal-bars and their 2-bar forms)
//     join cells along one axis.
//   - Contour families (rounded*, sharp*, some-heart) replace corners and
//     edges with arcs, chevrons or curves depending on which neighbors are
//     absent.
//
// Neighbor-aware families are built from a [neighbor.Table] of named
// variants, so the variant chosen for each of the 16 neighbor sets can be
// listed with [VariantOf] without drawing anything.
//
// # Path mode
//
// square and circle also implement [FragmentDrawer]: instead of standalone
// elements they produce path fragments that a sink can merge into a single
// compound path.
package styles
