// Package pkg provides the libraries behind qrsvg, a QR code renderer that
// draws each dark module with a decorative shape family.
//
// # Overview
//
//  1. [qr/matrix] - the module grid (encode text, validate imported grids)
//  2. [render/qr] - the module drawer: geometry, neighbor context, shape
//     families and emission sinks
//  3. [pipeline] - orchestration (grid → render → artifacts) with caching
//  4. [cache], [io], [errors], [observability] - supporting infrastructure
//
// # Data flow
//
//	text or matrix file
//	         ↓
//	    [qr/matrix] (bool grid with box size and quiet zone)
//	         ↓
//	    [render/qr] (one shape family draws every active cell)
//	         ↓
//	    [render/qr/sink] (SVG, streamed SVG, PNG, JSON)
//	         ↓
//	    [pipeline] (caches artifacts, converts SVG to PDF)
//
// # Quick Start
//
//	m, _ := matrix.Encode("https://example.com", matrix.LevelMedium, 10, 4)
//	out := sink.NewSVG(m.PixelSize())
//	if err := qr.Render(ctx, m, "rounded", out); err != nil {
//	    return err
//	}
//	os.WriteFile("code.svg", out.Bytes(), 0o644)
//
// [qr/matrix]: github.com/matzehuels/qrsvg/pkg/qr/matrix
// [render/qr]: github.com/matzehuels/qrsvg/pkg/render/qr
// [render/qr/sink]: github.com/matzehuels/qrsvg/pkg/render/qr/sink
// [pipeline]: github.com/matzehuels/qrsvg/pkg/pipeline
// [cache]: github.com/matzehuels/qrsvg/pkg/cache
// [io]: github.com/matzehuels/qrsvg/pkg/io
// [errors]: github.com/matzehuels/qrsvg/pkg/errors
// [observability]: github.com/matzehuels/qrsvg/pkg/observability
package pkg
