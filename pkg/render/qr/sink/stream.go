package sink

import (
	"bytes"
	"io"

	"github.com/matzehuels/qrsvg/pkg/errors"
	"github.com/matzehuels/qrsvg/pkg/render/qr/shape"
)

// Stream writes an SVG document incrementally. The header is written by
// [NewStream] and elements are flushed as they arrive. Path fragments are
// held back and written as one compound <path> by [Stream.Close], after
// the elements.
type Stream struct {
	w      io.Writer
	header svgHeader
	line   bytes.Buffer
	path   pathData
	closed bool
}

// NewStream writes the document header to w.
func NewStream(w io.Writer, size int, opts ...SVGOption) (*Stream, error) {
	s := &Stream{w: w, header: newHeader(size, opts)}
	s.header.open(&s.line)
	if err := s.flush(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Stream) AppendElement(p shape.Primitive) error {
	if s.closed {
		return errClosed()
	}
	s.line.WriteString(p.Element())
	s.line.WriteByte('\n')
	return s.flush()
}

func (s *Stream) AppendPathFragment(p shape.Path) error {
	if s.closed {
		return errClosed()
	}
	s.path.add(p)
	return nil
}

func errClosed() error { return errors.New(errors.ErrCodeSink, "write to closed stream") }

func (s *Stream) flush() error {
	_, err := s.w.Write(s.line.Bytes())
	s.line.Reset()
	return err
}

// Close writes the merged path, if any, and terminates the document. It is
// safe to call more than once.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if !s.path.empty() {
		s.path.writeElement(&s.line, s.header.pathFill)
	}
	closeSVG(&s.line)
	return s.flush()
}
