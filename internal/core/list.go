// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"sort"
	"strings"
)

// SplitNames splits a comma-separated list ("prod, web") into trimmed,
// non-empty names, keeping the first occurrence of each.
func SplitNames(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, p := range strings.Split(input, ",") {
		name := strings.TrimSpace(p)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// SuggestNames returns the names from all that start with the last token of
// input, case-insensitively, sorted and without duplicates. It backs shell
// completion for comma-separated flags.
func SuggestNames(all []string, input string) []string {
	parts := strings.Split(input, ",")
	last := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))

	seen := make(map[string]struct{})
	out := make([]string, 0, 8)
	for _, name := range all {
		if _, ok := seen[name]; ok {
			continue
		}
		if strings.HasPrefix(strings.ToLower(name), last) {
			out = append(out, name)
			seen[name] = struct{}{}
		}
	}
	sort.Strings(out)
	return out
}

// ApplySuggestion replaces the last token of current with suggestion.
func ApplySuggestion(current, suggestion string) string {
	parts := strings.Split(current, ",")
	parts[len(parts)-1] = suggestion
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ",")
}
