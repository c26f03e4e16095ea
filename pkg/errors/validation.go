package errors

import (
	"regexp"
	"strings"
	"unicode"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// namedColors is the subset of SVG color keywords accepted without a hex form.
var namedColors = map[string]bool{
	"black": true, "white": true, "red": true, "green": true, "blue": true,
	"yellow": true, "orange": true, "purple": true, "gray": true, "grey": true,
	"navy": true, "teal": true, "maroon": true, "transparent": true, "none": true,
}

// ValidateColor checks that a fill color is a hex triplet/sextet/octet or a
// known color keyword. Colors end up verbatim inside an SVG attribute, so
// anything else is rejected.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if hexColorRegex.MatchString(color) {
		return nil
	}
	if namedColors[strings.ToLower(color)] {
		return nil
	}
	return New(ErrCodeInvalidColor, "invalid color: %q (want #rgb, #rrggbb or a color name)", color)
}

// ValidateText validates the payload handed to the QR encoder.
//
// Rules:
//   - Not empty
//   - No null bytes
//   - At most 2953 bytes (version 40, level L, byte mode)
func ValidateText(text string) error {
	if text == "" {
		return New(ErrCodeInvalidInput, "text cannot be empty")
	}
	const maxBytes = 2953
	if len(text) > maxBytes {
		return New(ErrCodeInvalidInput, "text too long (max %d bytes)", maxBytes)
	}
	if strings.ContainsRune(text, '\x00') {
		return New(ErrCodeInvalidInput, "text contains null bytes")
	}
	return nil
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

var styleNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateStyleName checks the lexical form of a style name. Whether the
// style exists is decided by the registry.
func ValidateStyleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidStyle, "style name cannot be empty")
	}
	if !styleNameRegex.MatchString(name) {
		return New(ErrCodeInvalidStyle, "invalid style name: %q", name)
	}
	return nil
}
