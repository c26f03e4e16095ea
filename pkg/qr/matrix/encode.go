package matrix

import (
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/matzehuels/qrsvg/pkg/errors"
)

// Level is an error correction level.
type Level string

const (
	LevelLow      Level = "L"
	LevelMedium   Level = "M"
	LevelQuartile Level = "Q"
	LevelHigh     Level = "H"
)

var recovery = map[Level]qrcode.RecoveryLevel{
	LevelLow:      qrcode.Low,
	LevelMedium:   qrcode.Medium,
	LevelQuartile: qrcode.High,
	LevelHigh:     qrcode.Highest,
}

// ParseLevel accepts L, M, Q or H in any case.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := recovery[l]; !ok {
		return "", errors.New(errors.ErrCodeInvalidLevel, "invalid error correction level %q (want L, M, Q or H)", s)
	}
	return l, nil
}

// Encode builds the module grid for text.
func Encode(text string, level Level, box, border int) (*Matrix, error) {
	if err := errors.ValidateText(text); err != nil {
		return nil, err
	}
	rl, ok := recovery[level]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidLevel, "invalid error correction level %q", level)
	}

	q, err := qrcode.New(text, rl)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "encode %d bytes", len(text))
	}
	q.DisableBorder = true
	return New(q.Bitmap(), box, border)
}
