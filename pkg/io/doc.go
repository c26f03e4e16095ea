// Package io reads prepared module grids and writes rendered artifacts.
//
// # Matrix Formats
//
// A grid can be supplied instead of text when the caller already has a
// symbol (or any other boolean grid) to draw. Two encodings are accepted and
// told apart by their first non-space byte.
//
// JSON:
//
//	{
//	  "modules": [[true, false, true], [false, true, false]],
//	  "box_size": 10,
//	  "border": 4
//	}
//
// box_size and border are optional and default to the matrix package
// defaults.
//
// Text, one row per line:
//
//	#.#
//	.#.
//
// '#', '1', 'X' and 'x' mark active cells; '.', '0' and ' ' mark inactive
// ones. Blank lines are skipped. Rows must all have the same width.
//
// # Export
//
// [WriteMatrix] emits the JSON form, so a grid can be read back with
// [ReadMatrix] unchanged. [WriteFile] writes rendered output, creating
// parent directories as needed.
package io
