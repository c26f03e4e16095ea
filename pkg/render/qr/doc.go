// Package qr renders a module grid into vector primitives.
//
// # Overview
//
// [Render] walks the grid in row-major order. For each active cell it
// computes the box coordinates ([geom]), gathers the neighbor context
// ([neighbor]), asks the selected shape family ([styles]) for primitives,
// paints them and hands them to a [sink.Sink]. Inactive cells are skipped
// before any geometry work.
//
//	m, _ := matrix.Encode("https://example.com", matrix.LevelMedium, 10, 4)
//	doc := sink.NewSVG(m.PixelSize())
//	err := qr.Render(ctx, m, "rounded", doc,
//	    qr.WithSizeRatio(decimal.RequireFromString("0.9")),
//	    qr.WithEyeColors("#c00", "#900"),
//	)
//
// # Errors
//
// Invalid ratios, unknown styles and path mode on a family without fragment
// support are reported before anything is emitted. A sink error aborts the
// pass and is returned unchanged; entries already accepted stay in the sink.
//
// # Concurrency
//
// [WithWorkers] renders contiguous row ranges concurrently into in-memory
// recorders and replays them in order, so the emitted sequence is identical
// to a sequential pass. Random families draw from one generator per row,
// seeded from [WithSeed], which keeps their output independent of the
// worker count too.
package qr
