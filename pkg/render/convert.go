package render

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/matzehuels/qrsvg/pkg/errors"
)

// converter is the external tool used for PDF output.
var converter = "rsvg-convert"

// ToPDF converts an SVG document to PDF with rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, svg, "pdf")
}

func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath(converter); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err,
			"%s export requires librsvg (macOS: brew install librsvg, Linux: apt install librsvg2-bin)", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, converter, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "%s: %s", converter, bytes.TrimSpace(stderr.Bytes()))
	}
	if out.Len() == 0 {
		return nil, errors.New(errors.ErrCodeEncode, "%s produced no %s output", converter, format)
	}
	return out.Bytes(), nil
}

// Available reports whether PDF conversion can run on this machine.
func Available() bool {
	_, err := exec.LookPath(converter)
	return err == nil
}
