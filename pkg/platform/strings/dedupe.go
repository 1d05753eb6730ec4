// Package strings provides string slice utilities.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and blank entries, trimming each element.
// Order of first occurrence is preserved.
func DedupeAndTrim(values []string) []string {
	return DedupeBy(values, strings.TrimSpace)
}

// DedupeBy maps every value through key, drops empty keys and keeps the first
// occurrence of each key. The returned slice holds keys, not the raw values.
//
// Example:
//
//	DedupeBy([]string{" UAE", "uae ", ""}, func(s string) string {
//		return strings.ToLower(strings.TrimSpace(s))
//	})
//	// Returns: []string{"uae"}
func DedupeBy(values []string, key func(string) string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		k := key(v)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, k)
	}

	return result
}
