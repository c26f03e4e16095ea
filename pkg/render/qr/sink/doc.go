// Package sink provides the output backends that receive rendered cells.
//
// # Overview
//
// A [Sink] accepts two kinds of input, in the order the renderer produces
// them: standalone elements ([Sink.AppendElement]) and path fragments that
// belong to one merged path ([Sink.AppendPathFragment]). Backends:
//
//   - [SVG]: buffers a complete SVG document
//   - [Stream]: writes SVG elements to an [io.Writer] as they arrive
//   - [Raster]: fills primitives into a gogpu/gg canvas for PNG output
//   - [Recorder]: keeps entries in memory for replay, tests and JSON export
//
// # SVG Output
//
// The document size is given in millimeters at one tenth of the pixel size,
// with a pixel viewBox, so a 290px symbol prints at 29mm:
//
//	doc := sink.NewSVG(290, sink.WithBackground("#ffffff"))
//	err := qr.Render(ctx, grid, "rounded", doc)
//	out := doc.Bytes()
//
// Path fragments are concatenated into a single <path> element placed before
// any standalone elements.
//
// # JSON Output
//
// [RenderJSON] exports what a [Recorder] captured, including exact decimal
// coordinates, for tooling that wants geometry without parsing SVG.
package sink
