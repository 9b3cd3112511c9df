package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxNameLength bounds attribute and color names accepted from untrusted input.
const maxNameLength = 128

// ValidateAttrName validates an attribute name received from outside the
// layout file (query strings of the preview server).
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - Maximum length of 128 characters
//
// Whether the attribute actually exists is decided later by attribute selection.
func ValidateAttrName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSelection, "attribute name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidSelection, "attribute name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSelection, "attribute name contains invalid control characters")
		}
	}

	return nil
}

// colorNameRegex matches color scheme names ("viridis", "Set1", "rd-yl-bu").
var colorNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidateColorName validates a color scheme name for safety.
// Unknown but well-formed names are rejected later by the colormap lookup.
func ValidateColorName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidColor, "color scheme name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidColor, "color scheme name too long (max %d characters)", maxNameLength)
	}
	if !colorNameRegex.MatchString(name) {
		return New(ErrCodeInvalidColor, "invalid color scheme name: %q", name)
	}
	return nil
}

// ValidateOutputPath validates an output image path.
// It must name a file (not end in a separator) and contain no null bytes.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "output path contains a null byte")
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidInput, "output path must name a file: %q", path)
	}
	return nil
}
