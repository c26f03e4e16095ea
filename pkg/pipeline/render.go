package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/matzehuels/qrsvg/pkg/errors"
	"github.com/matzehuels/qrsvg/pkg/observability"
	"github.com/matzehuels/qrsvg/pkg/qr/matrix"
	"github.com/matzehuels/qrsvg/pkg/render"
	"github.com/matzehuels/qrsvg/pkg/render/qr"
	"github.com/matzehuels/qrsvg/pkg/render/qr/sink"
)

// Render draws m in one format. opts must have passed ValidateAndSetDefaults.
func Render(ctx context.Context, m *matrix.Matrix, opts Options, format string) ([]byte, qr.Stats, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Style, format)
	start := time.Now()

	var st qr.Stats
	data, err := renderFormat(ctx, m, opts, format, &st)

	hooks.OnRenderComplete(ctx, opts.Style, format, observability.RenderStats{
		Cells:      st.Cells,
		Active:     st.Active,
		Primitives: st.Primitives,
		Fragments:  st.Fragments,
	}, time.Since(start), err)
	return data, st, err
}

func renderFormat(ctx context.Context, m *matrix.Matrix, opts Options, format string, st *qr.Stats) ([]byte, error) {
	size := m.PixelSize()
	ropts := opts.renderOptions(st)

	switch format {
	case FormatSVG:
		return renderSVG(ctx, m, opts, ropts)

	case FormatPDF:
		svg, err := renderSVG(ctx, m, opts, ropts)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, svg)

	case FormatPNG:
		rasterOpts := []sink.RasterOption{
			sink.WithScale(opts.Scale),
			sink.WithRasterPathFill(opts.pathFill()),
		}
		if opts.Background != "" {
			rasterOpts = append(rasterOpts, sink.WithRasterBackground(opts.Background))
		}
		img := sink.NewRaster(size, rasterOpts...)
		defer img.Close()
		if err := qr.Render(ctx, m, opts.Style, img, ropts...); err != nil {
			return nil, err
		}
		data, err := img.PNG()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeEncode, err, "encode png")
		}
		return data, nil

	case FormatJSON:
		var rec sink.Recorder
		if err := qr.Render(ctx, m, opts.Style, &rec, ropts...); err != nil {
			return nil, err
		}
		jsonOpts := []sink.JSONOption{sink.WithJSONStyle(opts.Style), sink.WithJSONRatio(opts.SizeRatio)}
		if opts.Seed != nil && opts.Random() {
			jsonOpts = append(jsonOpts, sink.WithJSONSeed(*opts.Seed))
		}
		data, err := sink.RenderJSON(&rec, size, jsonOpts...)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeEncode, err, "encode json")
		}
		return data, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
}

func (o *Options) svgOptions() []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithPathFill(o.pathFill())}
	if o.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(o.Background))
	}
	if o.PixelUnits {
		svgOpts = append(svgOpts, sink.WithPixelUnits())
	}
	return svgOpts
}

func renderSVG(ctx context.Context, m *matrix.Matrix, opts Options, ropts []qr.Option) ([]byte, error) {
	doc := sink.NewSVG(m.PixelSize(), opts.svgOptions()...)
	if err := qr.Render(ctx, m, opts.Style, doc, ropts...); err != nil {
		return nil, err
	}
	return doc.Bytes(), nil
}

// StreamSVG renders m as SVG straight into w. Elements reach w as they are
// drawn; nothing is buffered or cached besides the merged path.
func StreamSVG(ctx context.Context, m *matrix.Matrix, opts Options, w io.Writer) (qr.Stats, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Style, FormatSVG)
	start := time.Now()

	var st qr.Stats
	err := streamSVG(ctx, m, opts, w, &st)

	hooks.OnRenderComplete(ctx, opts.Style, FormatSVG, observability.RenderStats{
		Cells:      st.Cells,
		Active:     st.Active,
		Primitives: st.Primitives,
		Fragments:  st.Fragments,
	}, time.Since(start), err)
	return st, err
}

func streamSVG(ctx context.Context, m *matrix.Matrix, opts Options, w io.Writer, st *qr.Stats) error {
	s, err := sink.NewStream(w, m.PixelSize(), opts.svgOptions()...)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "write svg header")
	}
	if err := qr.Render(ctx, m, opts.Style, s, opts.renderOptions(st)...); err != nil {
		return err
	}
	if err := s.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "finish svg")
	}
	return nil
}
