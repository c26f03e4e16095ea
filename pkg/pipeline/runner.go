package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrsvg/pkg/cache"
	"github.com/matzehuels/qrsvg/pkg/observability"
	"github.com/matzehuels/qrsvg/pkg/qr/matrix"
)

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner can serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses DefaultKeyer and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the grid and render stages.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.Logger.Debug("pipeline", "options", opts.String())

	result := &Result{Artifacts: make(map[string][]byte, len(opts.Formats))}

	start := time.Now()
	m, hit, err := r.Grid(ctx, opts)
	if err != nil {
		return nil, err
	}
	rows, cols := m.Size()
	result.Matrix = m
	result.GridHash = m.Digest()
	result.CacheInfo.MatrixHit = hit
	result.Stats.Modules = rows * cols
	result.Stats.EncodeTime = time.Since(start)

	r.Logger.Info("prepared grid",
		"modules", fmt.Sprintf("%dx%d", rows, cols),
		"cached", hit,
		"duration", result.Stats.EncodeTime.Round(time.Microsecond))

	start = time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, m, opts, &result.Stats)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(start)

	r.Logger.Info("rendered outputs",
		"style", opts.Style,
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime.Round(time.Microsecond))

	return result, nil
}

// Stream prepares the grid like Execute and then writes the SVG document
// to w as it is drawn, bypassing the artifact cache. The result carries no
// artifacts.
func (r *Runner) Stream(ctx context.Context, opts Options, w io.Writer) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()
	m, hit, err := r.Grid(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := opts.checkCanvas(m.PixelSize()); err != nil {
		return nil, err
	}
	rows, cols := m.Size()
	result := &Result{Matrix: m, GridHash: m.Digest()}
	result.CacheInfo.MatrixHit = hit
	result.Stats.Modules = rows * cols
	result.Stats.EncodeTime = time.Since(start)

	start = time.Now()
	st, err := StreamSVG(ctx, m, opts, w)
	if err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	result.Stats.Active = st.Active
	result.Stats.Primitives = st.Primitives
	result.Stats.Fragments = st.Fragments
	result.Stats.RenderTime = time.Since(start)

	r.Logger.Info("streamed svg",
		"style", opts.Style,
		"duration", result.Stats.RenderTime.Round(time.Microsecond))
	return result, nil
}

// RenderWithCacheInfo renders every requested format, serving what it can
// from the cache. The bool reports whether every artifact was cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, m *matrix.Matrix, opts Options, stats *Stats) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	if err := opts.checkCanvas(m.PixelSize()); err != nil {
		return nil, false, err
	}

	cacheable := opts.Cacheable()
	if !cacheable {
		r.Logger.Debug("random style without seed, skipping cache", "style", opts.Style)
	}
	// The layout is part of the key because it changes pixel coordinates.
	gridKey := fmt.Sprintf("%s/%d/%d", m.Digest(), m.BoxSize(), m.Border())

	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := cacheable
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(gridKey, opts.ArtifactKeyOpts(format))
		if cacheable && !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		allHit = false

		data, st, err := Render(ctx, m, opts, format)
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
		if stats != nil {
			stats.Active = st.Active
			stats.Primitives = st.Primitives
			stats.Fragments = st.Fragments
		}
		r.Logger.Debug("rendered", "format", format, "bytes", len(data), "primitives", st.Primitives)

		if cacheable {
			if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
				r.Logger.Warn("cache write failed", "format", format, "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}
	return artifacts, allHit, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
