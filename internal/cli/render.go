package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsvg/pkg/errors"
	qrio "github.com/matzehuels/qrsvg/pkg/io"
	"github.com/matzehuels/qrsvg/pkg/pipeline"
)

const defaultBase = "qr" // output base name when rendering text

// renderOpts holds the render flags that do not map one-to-one onto
// pipeline.Options.
type renderOpts struct {
	output       string // file, base path for several formats, or "-" for stdout
	formats      string // comma-separated
	border       int
	seed         uint64
	exportMatrix string // also write the grid as JSON
	noCache      bool
	refresh      bool
}

func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "render [text]",
		Short: "Render a QR code to SVG, PNG, PDF or JSON",
		Long: `Render encodes text into a QR symbol (or loads a grid with --matrix) and
draws every dark module with the chosen shape family.

Pass "-" as text to read it from stdin. With a single format, --output names
the file ("-" writes to stdout); with several formats it is a base path and
each file gets its format's extension. SVG written to stdout is streamed as
it is drawn and skips the artifact cache.`,
		Example: `  qrsvg render https://example.com --style rounded -o code.svg
  qrsvg render "hello" --style random-square --seed 7 -f svg,png
  qrsvg render --matrix grid.txt --style square --path -o -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				text, err := readText(cmd.InOrStdin(), args[0])
				if err != nil {
					return err
				}
				opts.Text = text
			}
			if ro.formats != "" {
				opts.Formats = pipeline.ParseFormats(ro.formats)
			}
			if cmd.Flags().Changed("border") {
				b := ro.border
				opts.Border = &b
			}
			if cmd.Flags().Changed("seed") {
				s := ro.seed
				opts.Seed = &s
			}
			c.config.Render.apply(cmd, &opts)
			opts.Refresh = ro.refresh
			return c.runRender(cmd.Context(), opts, ro)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&ro.output, "output", "o", "", `output file, base path, or "-" for stdout`)
	f.StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	f.StringVar(&opts.MatrixPath, "matrix", "", "load the grid from a text or JSON matrix file instead of encoding text")
	f.StringVar(&opts.Level, "level", pipeline.DefaultLevel, "error correction level: L, M, Q, H")
	f.IntVar(&opts.BoxSize, "box", 0, "module size in pixels (default 10)")
	f.IntVar(&ro.border, "border", 4, "quiet zone width in modules")
	f.StringVarP(&opts.Style, "style", "s", pipeline.DefaultStyle, "shape family (see 'qrsvg styles')")
	f.StringVar(&opts.SizeRatio, "ratio", pipeline.DefaultSizeRatio, "module size ratio in (0, 1]")
	f.StringVar(&opts.FrontColor, "front", "", "module color (default #000000)")
	f.StringVar(&opts.FillColor, "fill", "", "fill color for the merged path (default: front color)")
	f.StringVar(&opts.Background, "background", "", "background color (default: transparent)")
	f.StringVar(&opts.EyeColor, "eye-color", "", "finder pattern ring color")
	f.StringVar(&opts.EyeCenterColor, "eye-center-color", "", "finder pattern center color")
	f.StringVar(&opts.EyeStyle, "eye-style", "", "shape family for finder patterns")
	f.BoolVar(&opts.PathMode, "path", false, "merge shapes into a single path element")
	f.Uint64Var(&ro.seed, "seed", 0, "seed for random-* styles (default: unseeded)")
	f.Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	f.BoolVar(&opts.PixelUnits, "px", false, "size SVG documents in pixels instead of millimeters")
	f.IntVar(&opts.Workers, "workers", 0, "render rows in parallel with this many workers")
	f.StringVar(&ro.exportMatrix, "export-matrix", "", "also write the grid as a JSON matrix file")
	f.BoolVar(&ro.noCache, "no-cache", false, "disable the artifact cache")
	f.BoolVar(&ro.refresh, "refresh", false, "ignore cached artifacts and render again")

	_ = cmd.RegisterFlagCompletionFunc("style", completeStyles)
	_ = cmd.RegisterFlagCompletionFunc("eye-style", completeStyles)
	_ = cmd.RegisterFlagCompletionFunc("level", cobra.FixedCompletions([]string{"L", "M", "Q", "H"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// readText returns arg, or all of stdin when arg is "-".
func readText(stdin io.Reader, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, ro renderOpts) error {
	logger := loggerFromContext(ctx)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if ro.output == "-" && len(opts.Formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "stdout output takes a single format, got %s", strings.Join(opts.Formats, ","))
	}

	ui := c.Out
	if ro.output == "-" {
		ui = c.Err
	}

	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	streaming := ro.output == "-" && opts.Formats[0] == pipeline.FormatSVG

	var result *pipeline.Result
	if streaming {
		result, err = runner.Stream(ctx, opts, c.Out)
	} else {
		spin := newSpinner(ctx, c.Err, "Rendering "+opts.Style)
		spin.Start()
		result, err = runner.Execute(ctx, opts)
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if ro.exportMatrix != "" {
		if err := qrio.ExportMatrix(result.Matrix, ro.exportMatrix); err != nil {
			return err
		}
		logger.Debug("exported matrix", "path", ro.exportMatrix)
	}

	switch {
	case streaming:
		// already written to c.Out
	case ro.output == "-":
		if _, err := c.Out.Write(result.Artifacts[opts.Formats[0]]); err != nil {
			return errors.Wrap(errors.ErrCodeSink, err, "write stdout")
		}
	default:
		paths := outputPaths(ro.output, sourceBase(opts), opts.Formats)
		for _, format := range opts.Formats {
			if err := qrio.WriteFile(paths[format], result.Artifacts[format]); err != nil {
				return err
			}
		}
		printSuccess(ui, "Rendered %s", StyleHighlight.Render(opts.Style))
		for _, format := range opts.Formats {
			printFile(ui, paths[format])
		}
	}

	rows, cols := result.Matrix.Size()
	printStats(ui, rows, cols, result.Stats, result.CacheInfo.RenderHit)
	prog.done("rendered", "style", opts.Style, "files", len(opts.Formats))
	return nil
}

// sourceBase is the default output base: the matrix file without its
// extension, or "qr" when rendering text.
func sourceBase(opts pipeline.Options) string {
	if opts.MatrixPath != "" {
		return strings.TrimSuffix(opts.MatrixPath, filepath.Ext(opts.MatrixPath))
	}
	return defaultBase
}

// outputPaths maps each format to the file it is written to. A single
// format written to an explicit path keeps that path as given; otherwise a
// known format extension is stripped and base.<format> is used.
func outputPaths(output, fallback string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}

	base := output
	if base == "" {
		base = fallback
	} else if ext := filepath.Ext(base); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
