// Package validation checks the human-supplied names that end up in logs
// and reports: the ship name and body class labels.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Name length limits
const (
	MaxShipNameLen  = 64
	MaxClassNameLen = 32
)

// ErrInvalidName is returned for names that cannot be used.
var ErrInvalidName = errors.New("invalid name")

var (
	// Ship names allow alphanumerics, spaces and basic punctuation, e.g.
	// "USS Enterprise (NCC-1701)".
	validShipNameChars = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.'()]+$`)

	// Class labels appear as log field values and config keys.
	validClassNameChars = regexp.MustCompile(`^[a-z0-9_\-]+$`)
)

// ValidateShipName checks a ship name and returns it with surrounding
// whitespace removed.
func ValidateShipName(name string) (string, error) {
	trimmed, err := checkName("ship name", name, MaxShipNameLen)
	if err != nil {
		return "", err
	}

	if !validShipNameChars.MatchString(trimmed) {
		return "", fmt.Errorf("ship name %q contains invalid characters (only alphanumeric, spaces, hyphens, underscores, apostrophes, periods and parentheses allowed): %w",
			trimmed, ErrInvalidName)
	}
	return trimmed, nil
}

// ValidateClassName checks a body class label. Labels are lower case
// identifiers such as "small" or "near-earth".
func ValidateClassName(name string) error {
	trimmed, err := checkName("class name", name, MaxClassNameLen)
	if err != nil {
		return err
	}
	if trimmed != name {
		return fmt.Errorf("class name %q has surrounding whitespace: %w", name, ErrInvalidName)
	}

	if !validClassNameChars.MatchString(name) {
		return fmt.Errorf("class name %q must be lower case letters, digits, hyphens or underscores: %w",
			name, ErrInvalidName)
	}
	return nil
}

func checkName(kind, name string, maxLen int) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%s cannot be empty: %w", kind, ErrInvalidName)
	}

	if len(name) > maxLen {
		return "", fmt.Errorf("%s too long: %d characters (max %d): %w", kind, len(name), maxLen, ErrInvalidName)
	}

	if !utf8.ValidString(name) {
		return "", fmt.Errorf("%s contains invalid UTF-8 characters: %w", kind, ErrInvalidName)
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("%s cannot be only whitespace: %w", kind, ErrInvalidName)
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%s contains control characters: %w", kind, ErrInvalidName)
		}
	}
	return trimmed, nil
}
