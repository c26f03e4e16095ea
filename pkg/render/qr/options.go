package qr

import (
	"github.com/shopspring/decimal"

	"github.com/matzehuels/qrsvg/pkg/render/qr/geom"
)

// DefaultFrontColor paints cells when no other color applies.
const DefaultFrontColor = "#000000"

// Option configures [Render].
type Option func(*renderer)

type renderer struct {
	ratio     decimal.Decimal
	front     string
	fill      string
	eyeOuter  string
	eyeCenter string
	eyeStyle  string
	pathMode  bool
	seed      uint64
	seeded    bool
	workers   int
	stats     *Stats
}

func newRenderer(opts []Option) renderer {
	r := renderer{ratio: geom.DefaultRatio, front: DefaultFrontColor, workers: 1}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithSizeRatio sets the fraction of each cell covered by its box.
func WithSizeRatio(ratio decimal.Decimal) Option { return func(r *renderer) { r.ratio = ratio } }

// WithFrontColor sets the default cell color.
func WithFrontColor(color string) Option { return func(r *renderer) { r.front = color } }

// WithFillColor overrides the front color for data cells.
func WithFillColor(color string) Option { return func(r *renderer) { r.fill = color } }

// WithEyeColors paints finder-pattern cells. Empty strings keep the data
// color for that region.
func WithEyeColors(outer, center string) Option {
	return func(r *renderer) { r.eyeOuter, r.eyeCenter = outer, center }
}

// WithEyeStyle draws finder-pattern cells with a different family.
func WithEyeStyle(name string) Option { return func(r *renderer) { r.eyeStyle = name } }

// WithPathMode emits path fragments instead of elements. Only families that
// implement styles.FragmentDrawer accept it.
func WithPathMode() Option { return func(r *renderer) { r.pathMode = true } }

// WithSeed fixes the random source of random families.
func WithSeed(seed uint64) Option { return func(r *renderer) { r.seed, r.seeded = seed, true } }

// WithWorkers renders row ranges concurrently. Values below 2 render
// sequentially.
func WithWorkers(n int) Option { return func(r *renderer) { r.workers = n } }

// WithStats receives pass counters once rendering succeeds.
func WithStats(s *Stats) Option { return func(r *renderer) { r.stats = s } }

// Stats counts what a pass produced.
type Stats struct {
	Cells      int // Grid cells visited
	Active     int // Active cells drawn
	Primitives int // Elements emitted
	Fragments  int // Path fragments emitted
	EyeCells   int // Active cells inside finder patterns
}

func (s *Stats) add(o Stats) {
	s.Cells += o.Cells
	s.Active += o.Active
	s.Primitives += o.Primitives
	s.Fragments += o.Fragments
	s.EyeCells += o.EyeCells
}
