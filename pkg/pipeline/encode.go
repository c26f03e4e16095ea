package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/qrsvg/pkg/cache"
	qrio "github.com/matzehuels/qrsvg/pkg/io"
	"github.com/matzehuels/qrsvg/pkg/observability"
	"github.com/matzehuels/qrsvg/pkg/qr/matrix"
)

// Grid produces the module grid for opts and reports whether it came from
// the cache. Only encoded text is cached; imported grids are read directly.
func (r *Runner) Grid(ctx context.Context, opts Options) (*matrix.Matrix, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	var m *matrix.Matrix
	hit := false
	switch {
	case opts.Matrix != nil:
		m = opts.Matrix
	case opts.MatrixPath != "":
		imported, err := qrio.ImportMatrix(opts.MatrixPath)
		if err != nil {
			return nil, false, err
		}
		m = imported
	default:
		var err error
		if m, hit, err = r.encode(ctx, opts); err != nil {
			return nil, false, err
		}
	}
	m, err := applyLayout(m, opts)
	if err != nil {
		return nil, false, err
	}
	return m, hit, nil
}

func (r *Runner) encode(ctx context.Context, opts Options) (*matrix.Matrix, bool, error) {
	key := r.Keyer.MatrixKey(opts.Text, opts.Level)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if m, err := qrio.ReadMatrix(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "matrix")
				return m, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "matrix")
	}

	hooks := observability.Pipeline()
	hooks.OnEncodeStart(ctx, opts.Level, len(opts.Text))
	start := time.Now()
	m, err := matrix.Encode(opts.Text, opts.level, matrix.DefaultBoxSize, matrix.DefaultBorder)
	modules := 0
	if m != nil {
		rows, _ := m.Size()
		modules = rows
	}
	hooks.OnEncodeComplete(ctx, opts.Level, modules, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := qrio.WriteMatrix(m, &buf); err == nil {
		if err := r.Cache.Set(ctx, key, buf.Bytes(), cache.TTLMatrix); err == nil {
			observability.Cache().OnCacheSet(ctx, "matrix", buf.Len())
		} else {
			r.Logger.Warn("cache write failed", "key", "matrix", "err", err)
		}
	}
	return m, false, nil
}

// applyLayout overrides the grid's box size and border where opts set them.
func applyLayout(m *matrix.Matrix, opts Options) (*matrix.Matrix, error) {
	box, border := m.BoxSize(), m.Border()
	if opts.BoxSize > 0 {
		box = opts.BoxSize
	}
	if opts.Border != nil {
		border = *opts.Border
	}
	if box == m.BoxSize() && border == m.Border() {
		return m, nil
	}
	return m.WithLayout(box, border)
}
