// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package maps

import "slices"

// Sub returns the value under the given path, or nil if it does not exist.
func Sub(values map[string]any, path []string) any {
	path = slices.DeleteFunc(slices.Clone(path), func(key string) bool { return key == "" })
	if len(path) == 0 {
		return values
	}

	value, ok := values[path[0]]
	if !ok {
		return nil
	}
	if len(path) == 1 {
		return value
	}

	if mp, ok := value.(map[string]any); ok {
		return Sub(mp, path[1:])
	}

	return nil
}
