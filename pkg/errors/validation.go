package errors

import (
	"strings"
	"unicode"
)

// maxSourcePathLength bounds paths accepted from callers.
const maxSourcePathLength = 1024

// ValidateSourcePath validates a file path submitted as part of a source
// record. Paths are identifiers here, not filesystem locations, so relative
// segments are allowed; only empty, oversized and control-character paths are
// rejected.
func ValidateSourcePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > maxSourcePathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxSourcePathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateOutputPath validates a path the CLI is about to write.
// It must be non-empty and must not name a directory (trailing separator).
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path must name a file: %q", path)
	}
	return nil
}

// ValidateOneOf checks that value is one of the allowed choices.
// The field name is used in the error message.
func ValidateOneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "invalid %s: %q (must be one of: %s)", field, value, strings.Join(allowed, ", "))
}
