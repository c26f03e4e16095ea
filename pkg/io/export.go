package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/qrsvg/pkg/errors"
	"github.com/matzehuels/qrsvg/pkg/qr/matrix"
)

// WriteMatrix encodes m as indented JSON.
func WriteMatrix(m *matrix.Matrix, w io.Writer) error {
	box, border := m.BoxSize(), m.Border()
	doc := document{Modules: m.Modules(), BoxSize: &box, Border: &border}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportMatrix writes m as JSON to path.
func ExportMatrix(m *matrix.Matrix, path string) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	if err := WriteMatrix(m, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteFile writes data to path with mode 0644, creating parent directories.
func WriteFile(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func create(path string) (*os.File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
