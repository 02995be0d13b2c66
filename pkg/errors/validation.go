package errors

import (
	"strings"
	"unicode"
)

// MaxCanvasSide bounds each canvas dimension. Layout memory grows with
// width*height, so requests above this are rejected rather than clamped.
const MaxCanvasSide = 8192

// ValidateDimensions checks a requested canvas size.
// Both sides must be positive and no larger than MaxCanvasSide.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidDimensions, "width and height must be positive, got %dx%d", width, height)
	}
	if width > MaxCanvasSide || height > MaxCanvasSide {
		return New(ErrCodeInvalidDimensions, "canvas %dx%d exceeds maximum side %d", width, height, MaxCanvasSide)
	}
	return nil
}

// ValidatePositive checks that a named integer option is strictly positive.
func ValidatePositive(name string, v int) error {
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %d", name, v)
	}
	return nil
}

// ValidateOneOf checks that value is one of the allowed choices.
// The error message lists the choices in the order given.
func ValidateOneOf(name, value string, choices ...string) error {
	for _, c := range choices {
		if value == c {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "invalid %s: %q (must be one of: %s)", name, value, strings.Join(choices, ", "))
}

// ValidatePath validates a user-supplied file path (text, mask, font, output).
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateID validates an artifact identifier received over HTTP.
// IDs are opaque tokens; anything that could address the filesystem is refused.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "id too long (max 128 characters)")
	}
	for _, r := range id {
		if !(r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return New(ErrCodeInvalidInput, "id contains invalid character %q", r)
		}
	}
	return nil
}
