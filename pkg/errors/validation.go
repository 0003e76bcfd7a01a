package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxChildIDLength bounds child identifiers so they stay usable as cache and
// table keys.
const maxChildIDLength = 128

// ValidateDesignSize checks a container's design footprint.
// Both dimensions must be non-negative; zero is allowed and yields zero scales.
func ValidateDesignSize(width, height int) error {
	if width < 0 {
		return New(ErrCodeInvalidConfiguration, "design width must be >= 0, got %d", width)
	}
	if height < 0 {
		return New(ErrCodeInvalidConfiguration, "design height must be >= 0, got %d", height)
	}
	return nil
}

// ValidateDepth rejects depth values that cannot be ordered (NaN).
// Infinities are allowed and sort to either end.
func ValidateDepth(depth float64) error {
	if math.IsNaN(depth) {
		return New(ErrCodeInvalidConfiguration, "depth must be a number, got NaN")
	}
	return nil
}

// ValidateChildID validates a child identifier.
//
// The validation rules are:
//   - No empty IDs
//   - Maximum length of 128 characters
//   - No control characters
//   - No surrounding whitespace
func ValidateChildID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidConfiguration, "child id cannot be empty")
	}

	if len(id) > maxChildIDLength {
		return New(ErrCodeInvalidConfiguration, "child id too long (max %d characters)", maxChildIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfiguration, "child id contains invalid control characters")
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidConfiguration, "child id cannot start or end with whitespace: %q", id)
	}

	return nil
}

// ValidatePath validates a scene file path given on the command line or in a
// watch request.
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
