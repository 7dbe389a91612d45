package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateProcessName validates a process name for safety and correctness.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateProcessName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidProcess, "process name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidProcess, "process name too long (max 256 characters)")
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidProcess, "process name contains invalid control characters")
		}
	}

	return nil
}

// elementIDRegex matches valid element identifiers: snake_case, starting
// with a letter. IDs double as keys in exported JSON and as visual element
// references, so the character set is kept deliberately narrow.
var elementIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateElementID validates a process element identifier.
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidProcess, "element id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidProcess, "element id too long (max 128 characters)")
	}

	if !elementIDRegex.MatchString(id) {
		return New(ErrCodeInvalidProcess, "invalid element id (expected snake_case): %q", id)
	}

	return nil
}

// ValidateActorName validates an actor (swimlane) name.
// Actor names appear verbatim as lane titles, so anything printable is
// allowed, but control characters and empty names are rejected.
func ValidateActorName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidProcess, "actor name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidProcess, "actor name too long (max 256 characters)")
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidProcess, "actor name contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
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

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
