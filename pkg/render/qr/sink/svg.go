package sink

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/qrsvg/pkg/render/qr/shape"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// SVGOption configures [NewSVG] and [NewStream].
type SVGOption func(*svgHeader)

type svgHeader struct {
	size       int
	background string
	pathFill   string
	pixelUnits bool
}

// WithBackground paints the whole canvas before any cell.
func WithBackground(color string) SVGOption { return func(h *svgHeader) { h.background = color } }

// WithPathFill sets the fill of the merged fragment path (default #000000).
func WithPathFill(color string) SVGOption { return func(h *svgHeader) { h.pathFill = color } }

// WithPixelUnits sizes the document in pixels instead of millimeters.
func WithPixelUnits() SVGOption { return func(h *svgHeader) { h.pixelUnits = true } }

func newHeader(size int, opts []SVGOption) svgHeader {
	h := svgHeader{size: size, pathFill: "#000000"}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

func (h svgHeader) dimension() string {
	if h.pixelUnits {
		return strconv.Itoa(h.size)
	}
	return mm(h.size)
}

// mm converts pixels to millimeters at ten pixels per millimeter.
func mm(px int) string {
	s := strconv.Itoa(px / 10)
	if r := px % 10; r != 0 {
		s += "." + strconv.Itoa(r)
	}
	return s + "mm"
}

func (h svgHeader) open(buf *bytes.Buffer) {
	dim := h.dimension()
	fmt.Fprintf(buf, `<svg xmlns="%s" version="1.1" width="%s" height="%s" viewBox="0 0 %d %d">`+"\n",
		svgNamespace, dim, dim, h.size, h.size)
	if h.background != "" {
		fmt.Fprintf(buf, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", h.background)
	}
}

func closeSVG(buf *bytes.Buffer) { buf.WriteString("</svg>\n") }

// pathData merges fragments into the data of one <path>. Fragments are
// serialized as they arrive so merging stays linear in the output size.
type pathData struct {
	d strings.Builder
}

func (p *pathData) add(frag shape.Path) { frag.WriteData(&p.d) }

func (p *pathData) empty() bool { return p.d.Len() == 0 }

// writeElement writes the merged path and a trailing newline to buf.
func (p *pathData) writeElement(buf *bytes.Buffer, fill string) {
	buf.WriteString(`<path d="`)
	buf.WriteString(p.d.String())
	buf.WriteByte('"')
	if fill != "" {
		fmt.Fprintf(buf, ` fill="%s"`, fill)
	}
	buf.WriteString("/>\n")
}

// SVG buffers a full document in memory.
type SVG struct {
	header svgHeader
	body   bytes.Buffer
	path   pathData
}

// NewSVG creates an SVG document for a square canvas of size pixels.
func NewSVG(size int, opts ...SVGOption) *SVG {
	return &SVG{header: newHeader(size, opts)}
}

func (s *SVG) AppendElement(p shape.Primitive) error {
	s.body.WriteString(p.Element())
	s.body.WriteByte('\n')
	return nil
}

func (s *SVG) AppendPathFragment(p shape.Path) error {
	s.path.add(p)
	return nil
}

// Bytes returns the complete document.
func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	s.header.open(&buf)
	if !s.path.empty() {
		s.path.writeElement(&buf, s.header.pathFill)
	}
	buf.Write(s.body.Bytes())
	closeSVG(&buf)
	return buf.Bytes()
}
