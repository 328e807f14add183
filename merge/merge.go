// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package merge provides the strategies used to combine a setting that is set
// in two layers.
//
// A strategy receives the previous and the next value, both set, and returns the merged
// value. Returning nil leaves the setting unset.
package merge

import (
	"context"
	"maps"
	"slices"
)

// Func merges the previous value of a setting with the next one.
type Func[T any] func(ctx context.Context, prev, next T) (*T, error)

// Discard unsets the setting.
func Discard[T any](context.Context, T, T) (*T, error) {
	return nil, nil //nolint:nilnil
}

// Preserve keeps the previous value.
func Preserve[T any](_ context.Context, prev, _ T) (*T, error) {
	return &prev, nil
}

// Replace takes the next value. It is the default strategy.
func Replace[T any](_ context.Context, _, next T) (*T, error) {
	return &next, nil
}

// AppendSlice appends the next items after the previous ones.
func AppendSlice[S ~[]E, E any](_ context.Context, prev, next S) (*S, error) {
	merged := slices.Concat(prev, next)

	return &merged, nil
}

// PrependSlice places the next items before the previous ones.
func PrependSlice[S ~[]E, E any](_ context.Context, prev, next S) (*S, error) {
	merged := slices.Concat(next, prev)

	return &merged, nil
}

// Map merges two maps. Keys set in both take the next value.
func Map[M ~map[K]V, K comparable, V any](_ context.Context, prev, next M) (*M, error) {
	merged := make(M, len(prev)+len(next))
	maps.Copy(merged, prev)
	maps.Copy(merged, next)

	return &merged, nil
}

// Set returns the union of two sets.
func Set[M ~map[K]struct{}, K comparable](ctx context.Context, prev, next M) (*M, error) {
	return Map(ctx, prev, next)
}
