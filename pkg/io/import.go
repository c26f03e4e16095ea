package io

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/qrsvg/pkg/errors"
	"github.com/matzehuels/qrsvg/pkg/qr/matrix"
)

type document struct {
	Modules [][]bool `json:"modules"`
	BoxSize *int     `json:"box_size,omitempty"`
	Border  *int     `json:"border,omitempty"`
}

// ReadMatrix decodes a grid from r in either JSON or text form. ReadMatrix
// does not close r.
func ReadMatrix(r io.Reader) (*matrix.Matrix, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidMatrix, "matrix input is empty")
	}
	if trimmed[0] == '{' {
		return decodeJSON(trimmed)
	}
	return decodeText(data)
}

func decodeJSON(data []byte) (*matrix.Matrix, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMatrix, err, "decode matrix json")
	}
	box, border := matrix.DefaultBoxSize, matrix.DefaultBorder
	if doc.BoxSize != nil {
		box = *doc.BoxSize
	}
	if doc.Border != nil {
		border = *doc.Border
	}
	return matrix.New(doc.Modules, box, border)
}

func decodeText(data []byte) (*matrix.Matrix, error) {
	var rows [][]bool
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		row := make([]bool, 0, len(text))
		col := 0
		for _, c := range text {
			col++
			switch c {
			case '#', '1', 'X', 'x':
				row = append(row, true)
			case '.', '0', ' ':
				row = append(row, false)
			default:
				return nil, errors.New(errors.ErrCodeInvalidMatrix, "line %d, column %d: unexpected %q", line, col, c)
			}
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return matrix.New(rows, matrix.DefaultBoxSize, matrix.DefaultBorder)
}

// ImportMatrix reads a grid from the file at path.
func ImportMatrix(path string) (*matrix.Matrix, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "matrix file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadMatrix(f)
}
