// Package render holds output conversion shared by the renderers.
//
// The module drawer lives in the [qr] subpackage; it produces SVG, PNG and
// JSON on its own. PDF output is produced here by handing the SVG document
// to the external rsvg-convert tool from librsvg:
//
//	pdf, err := render.ToPDF(svg)
//
// [qr]: github.com/matzehuels/qrsvg/pkg/render/qr
package render
