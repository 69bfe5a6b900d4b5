package errors

import (
	"strings"
	"unicode"
)

// ValidateOperationName validates an operation identifier for safety and
// correctness. Operation numbers come from spreadsheet ingestion upstream,
// so the rules here are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateOperationName(name string) error {
	if name == "" {
		return New(ErrCodeMalformedOp, "operation number cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeMalformedOp, "operation number too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeMalformedOp, "operation number contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a local file path for safety.
// It prevents path traversal and ensures reasonable path length.
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

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
