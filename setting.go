// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/nil-go/strata/env"
	"github.com/nil-go/strata/internal/convert"
	"github.com/nil-go/strata/merge"
	"github.com/nil-go/strata/validate"
)

// MergeSetting merges a scalar setting. If both values are set, fn decides the result,
// and a nil fn takes the next value.
func MergeSetting[V any](ctx context.Context, prev, next *V, fn merge.Func[V]) (*V, error) {
	switch {
	case next == nil:
		return prev, nil
	case prev == nil || fn == nil:
		return next, nil
	default:
		return fn(ctx, *prev, *next)
	}
}

// MergeSlice merges a list setting where nil means unset.
func MergeSlice[E any](ctx context.Context, prev, next []E, fn merge.Func[[]E]) ([]E, error) {
	switch {
	case next == nil:
		return prev, nil
	case prev == nil || fn == nil:
		return next, nil
	}

	merged, err := fn(ctx, prev, next)
	if err != nil || merged == nil {
		return nil, err
	}

	return *merged, nil
}

// MergeMap merges a map setting where nil means unset.
func MergeMap[K comparable, V any](ctx context.Context, prev, next map[K]V, fn merge.Func[map[K]V]) (map[K]V, error) {
	switch {
	case next == nil:
		return prev, nil
	case prev == nil || fn == nil:
		return next, nil
	}

	merged, err := fn(ctx, prev, next)
	if err != nil || merged == nil {
		return nil, err
	}

	return *merged, nil
}

// MergePartialSetting merges a nested configuration field by field.
// The first value set is taken as is, and defaults are left to FinalizeNested.
func MergePartialSetting[P PartialConfig[P]](ctx context.Context, prev, next *P) (*P, error) {
	switch {
	case next == nil:
		return prev, nil
	case prev == nil:
		return next, nil
	}

	merged, err := (*prev).Merge(ctx, *next)
	if err != nil {
		return nil, err
	}

	return &merged, nil
}

// Enum is the contract of a partial enum, which holds one of several variants.
type Enum[E any] interface {
	// Variant names the variant that is held.
	Variant() string
	// MergeVariant merges the payloads of two values holding the same variant.
	MergeVariant(ctx context.Context, next E) (E, error)
}

// MergeEnum merges a partial enum. The next value replaces the previous one
// unless both hold the same variant, in which case their payloads are merged.
func MergeEnum[E Enum[E]](ctx context.Context, prev, next *E) (*E, error) {
	if next == nil {
		return prev, nil
	}
	if prev == nil || (*prev).Variant() != (*next).Variant() {
		return next, nil
	}

	merged, err := (*prev).MergeVariant(ctx, *next)
	if err != nil {
		return nil, err
	}

	return &merged, nil
}

// FinalizePartial merges the defaults, the partial and the environment variables
// in increasing precedence. It is the body of most Finalize implementations.
func FinalizePartial[P PartialConfig[P]](ctx context.Context, partial P, environ env.Environ) (P, error) {
	var zero P

	defaults, err := zero.DefaultValues(ctx)
	if err != nil {
		return zero, err
	}
	finalized, err := defaults.Merge(ctx, partial)
	if err != nil {
		return zero, err
	}

	envs, err := zero.EnvValues(environ)
	if err != nil {
		return zero, err
	}

	return finalized.Merge(ctx, envs)
}

// FinalizeNested finalizes a nested configuration if it is set.
func FinalizeNested[P PartialConfig[P]](ctx context.Context, partial *P, environ env.Environ) (*P, error) {
	if partial == nil {
		return nil, nil //nolint:nilnil
	}

	finalized, err := (*partial).Finalize(ctx, environ)
	if err != nil {
		return nil, err
	}

	return &finalized, nil
}

// FinalizeNestedSlice finalizes every nested configuration in the list.
func FinalizeNestedSlice[P PartialConfig[P]](ctx context.Context, partials []P, environ env.Environ) ([]P, error) {
	if partials == nil {
		return nil, nil
	}

	finalized := make([]P, 0, len(partials))
	for _, partial := range partials {
		value, err := partial.Finalize(ctx, environ)
		if err != nil {
			return nil, err
		}
		finalized = append(finalized, value)
	}

	return finalized, nil
}

// FinalizeNestedMap finalizes every nested configuration in the map.
func FinalizeNestedMap[K comparable, P PartialConfig[P]](
	ctx context.Context, partials map[K]P, environ env.Environ,
) (map[K]P, error) {
	if partials == nil {
		return nil, nil
	}

	finalized := make(map[K]P, len(partials))
	for key, partial := range partials {
		value, err := partial.Finalize(ctx, environ)
		if err != nil {
			return nil, err
		}
		finalized[key] = value
	}

	return finalized, nil
}

// Transform replaces a set value with the result of fn.
func Transform[V any](ctx context.Context, value *V, fn func(context.Context, V) (V, error)) (*V, error) {
	if value == nil || fn == nil {
		return value, nil
	}

	transformed, err := fn(ctx, *value)
	if err != nil {
		return nil, err
	}

	return &transformed, nil
}

const requiredMessage = "this setting is required"

// ValidateSetting runs the validators against a scalar setting if it is set.
// An unset required setting is reported only when finalize is true.
func ValidateSetting[V any](
	ctx context.Context, path Path, value *V, required, finalize bool, fns ...validate.Func[V],
) []*SettingError {
	if value == nil {
		return requiredError(path, required, finalize)
	}

	var errs []*SettingError
	for _, fn := range fns {
		if err := fn(ctx, *value); err != nil {
			errs = append(errs, NewSettingError(path, err))
		}
	}

	return errs
}

// ValidateSlice runs the validators against a list setting if it is set.
func ValidateSlice[E any](
	ctx context.Context, path Path, values []E, required, finalize bool, fns ...validate.Func[[]E],
) []*SettingError {
	if values == nil {
		return requiredError(path, required, finalize)
	}

	return ValidateSetting(ctx, path, &values, required, finalize, fns...)
}

// ValidateMap runs the validators against a map setting if it is set.
func ValidateMap[K comparable, V any](
	ctx context.Context, path Path, values map[K]V, required, finalize bool, fns ...validate.Func[map[K]V],
) []*SettingError {
	if values == nil {
		return requiredError(path, required, finalize)
	}

	return ValidateSetting(ctx, path, &values, required, finalize, fns...)
}

// ValidateNested validates a nested configuration if it is set.
func ValidateNested[P PartialConfig[P]](ctx context.Context, path Path, value *P, required, finalize bool) []*SettingError {
	if value == nil {
		return requiredError(path, required, finalize)
	}

	return (*value).ValidateWithPath(ctx, path, finalize)
}

// ValidateNestedSlice validates every nested configuration in the list,
// reporting paths with the index of the item, e.g. `list[0].name`.
func ValidateNestedSlice[P PartialConfig[P]](ctx context.Context, path Path, values []P, finalize bool) []*SettingError {
	var errs []*SettingError
	for i, value := range values {
		errs = append(errs, value.ValidateWithPath(ctx, path.Index(i), finalize)...)
	}

	return errs
}

// ValidateNestedMap validates every nested configuration in the map,
// reporting paths with the key of the item, e.g. `map.key.name`.
// Keys are visited in sorted order.
func ValidateNestedMap[K cmp.Ordered, P PartialConfig[P]](
	ctx context.Context, path Path, values map[K]P, finalize bool,
) []*SettingError {
	keys := make([]K, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var errs []*SettingError
	for _, key := range keys {
		errs = append(errs, values[key].ValidateWithPath(ctx, path.Key(fmt.Sprint(key)), finalize)...)
	}

	return errs
}

func requiredError(path Path, required, finalize bool) []*SettingError {
	if required && finalize {
		return []*SettingError{{Path: path, Message: requiredMessage}}
	}

	return nil
}

// DefaultFromEnv reads the environment variable and converts it to V.
// It returns nil if the variable is unset or empty.
func DefaultFromEnv[V any](environ env.Environ, key string) (*V, error) {
	return ParseEnv(environ, key, func(value string) (V, error) {
		var parsed V
		err := convert.Default.ConvertAs(key, value, &parsed)

		return parsed, err
	})
}

// ParseEnv reads the environment variable and parses it with the given function.
// It returns nil if the variable is unset or empty.
func ParseEnv[V any](environ env.Environ, key string, parse func(string) (V, error)) (*V, error) {
	value, ok := env.Lookup(environ, key)
	if !ok {
		return nil, nil //nolint:nilnil
	}

	parsed, err := parse(value)
	if err != nil {
		return nil, &EnvVarError{Key: key, Err: err}
	}

	return &parsed, nil
}

// ParseDefault converts a literal default value to V.
func ParseDefault[V any](value string) (V, error) {
	var parsed V
	if err := convert.Default.ConvertAs("default", value, &parsed); err != nil {
		return parsed, &DefaultError{Err: err}
	}

	return parsed, nil
}

// Ptr returns a pointer to the value. It is handy when writing default values of partials.
func Ptr[V any](value V) *V {
	return &value
}
