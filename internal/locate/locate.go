// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package locate classifies references to configuration sources.
package locate

import (
	"slices"
	"strings"

	"github.com/nil-go/strata/format"
)

// IsURLLike reports whether the value looks like a web URL.
func IsURLLike(value string) bool {
	return strings.HasPrefix(value, "https://") ||
		strings.HasPrefix(value, "http://") ||
		strings.HasPrefix(value, "www")
}

// IsFileLike reports whether the value looks like a file path,
// i.e. it has a path separator or an extension.
func IsFileLike(value string) bool {
	return strings.HasPrefix(value, "file://") ||
		strings.ContainsAny(value, `/\.`)
}

// IsSecureURL reports whether the URL uses https. Loopback URLs are always secure.
func IsSecureURL(value string) bool {
	if strings.Contains(value, "127.0.0.1") || strings.Contains(value, "//localhost") {
		return true
	}

	return strings.HasPrefix(value, "https://")
}

// IsSourceFormat reports whether the value ends with the extension of a supported format.
func IsSourceFormat(value string) bool {
	_, err := format.Detect(value)

	return err == nil
}

// Scheme returns the scheme of an URL such as `s3://bucket/key`, or "" if there is none.
func Scheme(value string) string {
	scheme, _, found := strings.Cut(value, "://")
	if !found || scheme == "" || strings.ContainsAny(scheme, `/\.`) {
		return ""
	}

	return strings.ToLower(scheme)
}

// HasScheme reports whether the value uses one of the given schemes.
func HasScheme(value string, schemes []string) bool {
	scheme := Scheme(value)

	return scheme != "" && slices.Contains(schemes, scheme)
}
