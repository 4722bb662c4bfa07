// Package transform converts raw provider payloads into database entities.
// Everything here is a pure function: sentinel scrubbing, dual timestamp
// rendering, category pivoting and region fan-out.
package transform

import (
	"strconv"
	"strings"
)

// Sentinel strings the KMA feeds publish for missing measurements. They map
// to NULL, never to 0.
var invalidValues = map[string]struct{}{
	"-99.0": {},
	"-99":   {},
	"":      {},
}

// ParseFloatOrNull parses a wire value into a nullable float. Sentinels and
// unparseable values yield nil.
func ParseFloatOrNull(value string) *float64 {
	trimmed := strings.TrimSpace(value)
	if _, invalid := invalidValues[trimmed]; invalid {
		return nil
	}
	number, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &number
}

// StringOrNull returns nil for empty or sentinel values, otherwise a pointer
// to the trimmed string.
func StringOrNull(value string) *string {
	trimmed := strings.TrimSpace(value)
	if _, invalid := invalidValues[trimmed]; invalid {
		return nil
	}
	return &trimmed
}

// FloatPtr returns a pointer to v. Test helper-grade but used by mappers for
// provider fields that are always present on the wire.
func FloatPtr(v float64) *float64 {
	return &v
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
