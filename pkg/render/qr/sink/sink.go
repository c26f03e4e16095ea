package sink

import "github.com/matzehuels/qrsvg/pkg/render/qr/shape"

// Sink receives rendered output in call order.
type Sink interface {
	AppendElement(p shape.Primitive) error
	AppendPathFragment(p shape.Path) error
}

// Entry is one recorded call. Exactly one of Element or Fragment is set,
// selected by IsFragment.
type Entry struct {
	IsFragment bool
	Element    shape.Primitive
	Fragment   shape.Path
}

// Recorder is an in-memory Sink.
type Recorder struct {
	Entries []Entry
}

func (r *Recorder) AppendElement(p shape.Primitive) error {
	r.Entries = append(r.Entries, Entry{Element: p})
	return nil
}

func (r *Recorder) AppendPathFragment(p shape.Path) error {
	r.Entries = append(r.Entries, Entry{IsFragment: true, Fragment: p})
	return nil
}

// Len returns the number of recorded entries.
func (r *Recorder) Len() int { return len(r.Entries) }

// Elements returns the recorded standalone elements in order.
func (r *Recorder) Elements() []shape.Primitive {
	var out []shape.Primitive
	for _, e := range r.Entries {
		if !e.IsFragment {
			out = append(out, e.Element)
		}
	}
	return out
}

// Path returns all recorded fragments joined into one path.
func (r *Recorder) Path() shape.Path {
	var out shape.Path
	for _, e := range r.Entries {
		if e.IsFragment {
			out = append(out, e.Fragment...)
		}
	}
	return out
}

// Replay forwards every entry to dst in order and stops at the first error.
func (r *Recorder) Replay(dst Sink) error {
	for _, e := range r.Entries {
		var err error
		if e.IsFragment {
			err = dst.AppendPathFragment(e.Fragment)
		} else {
			err = dst.AppendElement(e.Element)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
