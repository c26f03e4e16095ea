package qr

import (
	"context"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/qrsvg/pkg/errors"
	"github.com/matzehuels/qrsvg/pkg/render/qr/geom"
	"github.com/matzehuels/qrsvg/pkg/render/qr/neighbor"
	"github.com/matzehuels/qrsvg/pkg/render/qr/sink"
	"github.com/matzehuels/qrsvg/pkg/render/qr/styles"
)

// Grid is the module grid being rendered.
type Grid interface {
	Size() (rows, cols int)
	Active(row, col int) bool
	Neighbors(row, col int) neighbor.Set
	BoxSize() int
	Border() int
	PixelSize() int
	PixelOrigin(row, col int) (x, y int)
}

// pass is one configured rendering of one grid.
type pass struct {
	grid     Grid
	geo      geom.Geometry
	eyes     geom.Eyes
	family   *styles.Family
	drawer   styles.Drawer
	fragment styles.FragmentDrawer
	eye      styles.Drawer
	opts     renderer
	colorEye bool
	random   bool // either family reads Module.Rand
}

// Render draws every active cell of grid with the named style into out.
func Render(ctx context.Context, grid Grid, style string, out sink.Sink, opts ...Option) error {
	p, err := prepare(grid, style, newRenderer(opts))
	if err != nil {
		return err
	}

	rows, _ := grid.Size()
	var stats Stats
	if p.opts.workers < 2 || rows < 2 {
		stats, err = p.rows(ctx, 0, rows, out)
	} else {
		stats, err = p.parallel(ctx, rows, out)
	}
	if err != nil {
		return err
	}
	if p.opts.stats != nil {
		*p.opts.stats = stats
	}
	return nil
}

func prepare(grid Grid, style string, r renderer) (*pass, error) {
	geo, err := geom.NewGeometry(grid.BoxSize(), r.ratio)
	if err != nil {
		return nil, err
	}
	fam, err := styles.Lookup(style)
	if err != nil {
		return nil, err
	}
	if !r.seeded {
		r.seed = rand.Uint64()
	}

	p := &pass{
		grid:     grid,
		geo:      geo,
		eyes:     geom.Eyes{Border: grid.Border(), BoxSize: grid.BoxSize(), PixelSize: grid.PixelSize()},
		family:   fam,
		drawer:   fam.New(geo),
		opts:     r,
		colorEye: r.eyeOuter != "" || r.eyeCenter != "",
		random:   fam.Random,
	}

	if r.pathMode {
		fd, ok := p.drawer.(styles.FragmentDrawer)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnsupported, "style %q does not support path mode", style)
		}
		p.fragment = fd
	}
	if r.eyeStyle != "" {
		ef, err := styles.Lookup(r.eyeStyle)
		if err != nil {
			return nil, err
		}
		p.eye = ef.New(geo)
		p.random = p.random || ef.Random
	}
	return p, nil
}

// parallel renders contiguous row ranges concurrently and replays them into
// out in order.
func (p *pass) parallel(ctx context.Context, rows int, out sink.Sink) (Stats, error) {
	n := min(p.opts.workers, rows)
	recs := make([]sink.Recorder, n)
	stats := make([]Stats, n)

	g, gctx := errgroup.WithContext(ctx)
	for i := range n {
		from, to := i*rows/n, (i+1)*rows/n
		g.Go(func() error {
			s, err := p.rows(gctx, from, to, &recs[i])
			stats[i] = s
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	var total Stats
	for i := range recs {
		if err := recs[i].Replay(out); err != nil {
			return Stats{}, err
		}
		total.add(stats[i])
	}
	return total, nil
}

// rows renders rows [from, to) into out.
func (p *pass) rows(ctx context.Context, from, to int, out sink.Sink) (Stats, error) {
	var st Stats
	_, cols := p.grid.Size()
	needsEyes := p.colorEye || p.eye != nil

	for row := from; row < to; row++ {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		var rng *rand.Rand
		if p.random {
			rng = rand.New(rand.NewPCG(p.opts.seed, uint64(row)))
		}

		for col := range cols {
			st.Cells++
			if !p.grid.Active(row, col) {
				continue
			}
			st.Active++

			x, y := p.grid.PixelOrigin(row, col)
			m := styles.Module{Coords: p.geo.Coords(x, y), Rand: rng}
			if p.family.Neighbors || p.eye != nil {
				m.Neighbors = p.grid.Neighbors(row, col)
			}
			if needsEyes {
				m.Region = p.eyes.Classify(y, x)
				if m.Region != geom.RegionData {
					st.EyeCells++
				}
			}

			if err := p.emit(m, out, &st); err != nil {
				return st, err
			}
		}
	}
	return st, nil
}

func (p *pass) emit(m styles.Module, out sink.Sink, st *Stats) error {
	eyeCell := m.Region != geom.RegionData
	drawer := p.drawer
	if eyeCell && p.eye != nil {
		drawer = p.eye
	}

	// Fragments carry no color of their own, so recolored or restyled eye
	// cells fall back to elements.
	if p.fragment != nil && !(eyeCell && (p.colorEye || p.eye != nil)) {
		st.Fragments++
		return out.AppendPathFragment(p.fragment.Fragment(m))
	}

	fill := p.color(m.Region)
	for _, prim := range drawer.Draw(m) {
		st.Primitives++
		if err := out.AppendElement(prim.WithFill(fill)); err != nil {
			return err
		}
	}
	return nil
}

func (p *pass) color(region geom.Region) string {
	switch {
	case region == geom.RegionEyeCenter && p.opts.eyeCenter != "":
		return p.opts.eyeCenter
	case region == geom.RegionEyeOuter && p.opts.eyeOuter != "":
		return p.opts.eyeOuter
	case p.opts.fill != "":
		return p.opts.fill
	}
	return p.opts.front
}
