// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package env

import "strings"

// SplitComma splits the value by `,`.
func SplitComma(value string) []string {
	return split(value, ",")
}

// SplitColon splits the value by `:`.
func SplitColon(value string) []string {
	return split(value, ":")
}

// SplitSemicolon splits the value by `;`.
func SplitSemicolon(value string) []string {
	return split(value, ";")
}

// SplitSpace splits the value by whitespace.
func SplitSpace(value string) []string {
	return strings.Fields(value)
}

// Items are trimmed, and empty ones are dropped.
func split(value, sep string) []string {
	parts := strings.Split(value, sep)
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}

	return items
}
