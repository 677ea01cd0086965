package errors

import (
	"strings"
	"unicode"
)

// maxTierNameLength bounds tier names accepted from documents and config files.
const maxTierNameLength = 256

// ValidateTierName validates a tier name taken from a document or a config file.
//
// The rules are conservative:
//   - No empty or whitespace-only names
//   - No control characters (they would corrupt the character grid)
//   - Maximum length of 256 characters
func ValidateTierName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "tier name cannot be empty")
	}

	if len([]rune(name)) > maxTierNameLength {
		return New(ErrCodeInvalidInput, "tier name too long (max %d characters)", maxTierNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "tier name %q contains control characters", name)
		}
	}

	return nil
}

// ValidatePath validates an output or input file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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

	return nil
}
