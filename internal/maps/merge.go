// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package maps

// Merge recursively merges the src map into the dst map.
// Key conflicts are resolved by preferring src,
// or recursively descending, if both values from src and dst are map.
func Merge(dst, src map[string]any) {
	for key, srcVal := range src {
		// Direct override if the srcVal is not map[string]any.
		srcMap, srcOk := srcVal.(map[string]any)
		if !srcOk {
			dst[key] = Clone(srcVal)

			continue
		}

		// Direct override if the dstVal is not map[string]any.
		dstMap, dstOk := dst[key].(map[string]any)
		if !dstOk {
			// Create a new map to avoid sharing the src map.
			dst[key] = Clone(srcMap)

			continue
		}

		Merge(dstMap, srcMap)
	}
}

// Clone returns a deep copy of the value,
// descending into map[string]any and []any.
func Clone[T any](value T) T { //nolint:ireturn
	cloned, _ := clone(value).(T)

	return cloned
}

func clone(value any) any {
	switch v := value.(type) {
	case map[string]any:
		if v == nil {
			return v
		}
		values := make(map[string]any, len(v))
		for key, val := range v {
			values[key] = clone(val)
		}

		return values
	case []any:
		if v == nil {
			return v
		}
		values := make([]any, len(v))
		for i, val := range v {
			values[i] = clone(val)
		}

		return values
	default:
		return value
	}
}
