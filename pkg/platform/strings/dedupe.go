// Package strings provides string manipulation utilities.
package strings

import (
	"slices"
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "  "})
//	// Returns: []string{"foo", "bar"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// SortedUnion merges the given lists into one trimmed, deduplicated and sorted
// set. The result is never nil.
//
// Example:
//
//	SortedUnion([]string{"Dental", "Audiology"}, nil, []string{" Dental "})
//	// Returns: []string{"Audiology", "Dental"}
func SortedUnion(lists ...[]string) []string {
	var all []string
	for _, l := range lists {
		all = append(all, l...)
	}
	result := DedupeAndTrim(all)
	if result == nil {
		return []string{}
	}
	slices.Sort(result)
	return result
}
