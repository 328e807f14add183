// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package derive

import (
	"context"
	"errors"
	"maps"
	"reflect"
	"slices"

	"github.com/nil-go/strata"
	"github.com/nil-go/strata/env"
	"github.com/nil-go/strata/internal/convert"
	"github.com/nil-go/strata/validate"
)

// defaults returns the default values. Nested structs are included only if deep is true,
// since finalize visits them on its own.
func (s *structInfo) defaults(deep bool) (map[string]any, error) {
	values := make(map[string]any)
	var errs []error
	for _, fld := range s.fields {
		switch {
		case fld.kind == structKind && deep:
			nested, err := fld.nested.defaults(deep)
			if err != nil {
				errs = append(errs, err)

				continue
			}
			if len(nested) > 0 {
				values[fld.key] = nested
			}
		case fld.kind == leafKind && fld.def != nil:
			value, err := convertTo(fld.key, *fld.def, fld.typ)
			if err != nil {
				errs = append(errs, &strata.DefaultError{Err: err})

				continue
			}
			values[fld.key] = value
		}
	}

	return values, errors.Join(errs...)
}

// env returns the values overridden by environment variables.
// Nested structs are included only if deep is true.
func (s *structInfo) env(environ env.Environ, deep bool) (map[string]any, error) {
	values := make(map[string]any)
	var errs []error
	for _, fld := range s.fields {
		switch {
		case fld.kind == structKind && deep:
			nested, err := fld.nested.env(environ, deep)
			if err != nil {
				errs = append(errs, err)

				continue
			}
			if len(nested) > 0 {
				values[fld.key] = nested
			}
		case fld.kind == leafKind && fld.env != "":
			raw, ok := env.Lookup(environ, fld.env)
			if !ok {
				continue
			}
			value, err := convertTo(fld.env, raw, fld.typ)
			if err != nil {
				errs = append(errs, &strata.EnvVarError{Key: fld.env, Err: err})

				continue
			}
			values[fld.key] = value
		}
	}

	return values, errors.Join(errs...)
}

// convertTo converts a literal into typ. Lists are comma separated.
func convertTo(name string, raw string, typ reflect.Type) (any, error) {
	var from any = raw
	if typ.Kind() == reflect.Slice && typ.Elem().Kind() != reflect.Uint8 {
		from = env.SplitComma(raw)
	}

	target := reflect.New(typ)
	if err := convert.Default.ConvertAs(name, from, target.Interface()); err != nil {
		return nil, err
	}

	return target.Elem().Interface(), nil
}

func (s *structInfo) merge(ctx context.Context, prev, next map[string]any) (map[string]any, error) {
	merged := make(map[string]any, len(prev)+len(next))
	maps.Copy(merged, prev)

	var errs []error
	for _, fld := range s.fields {
		nextValue, ok := next[fld.key]
		if !ok {
			continue
		}
		prevValue, exists := merged[fld.key]

		var (
			value any
			err   error
		)
		switch {
		case fld.kind == structKind || fld.kind == pointerKind:
			prevMap, _ := prevValue.(map[string]any)
			nextMap, _ := nextValue.(map[string]any)
			value, err = fld.nested.merge(ctx, prevMap, nextMap)
		case !exists:
			value = nextValue
		default:
			value, err = mergeValues(ctx, fld.merge, prevValue, nextValue)
		}

		switch {
		case err != nil:
			errs = append(errs, err)
		case value == nil:
			delete(merged, fld.key)
		default:
			merged[fld.key] = value
		}
	}

	return merged, errors.Join(errs...)
}

func (s *structInfo) validate(
	ctx context.Context, values map[string]any, path strata.Path, finalize bool,
) []*strata.SettingError {
	var errs []*strata.SettingError
	for _, fld := range s.fields {
		fieldPath := path.Key(fld.key)
		value, ok := values[fld.key]
		if !ok {
			if fld.kind == structKind && finalize {
				errs = append(errs, fld.nested.validate(ctx, nil, fieldPath, finalize)...)

				continue
			}
			errs = append(errs, strata.ValidateSetting[any](ctx, fieldPath, nil, fld.required, finalize)...)

			continue
		}

		switch fld.kind {
		case extendKind:
			if extends, ok := value.(strata.ExtendsFrom); ok {
				if err := strata.ValidateExtendsFrom(ctx, extends); err != nil {
					errs = append(errs, strata.NewSettingError(fieldPath, err))
				}
			}
		case structKind, pointerKind:
			nested, _ := value.(map[string]any)
			errs = append(errs, fld.nested.validate(ctx, nested, fieldPath, finalize)...)
		case sliceKind:
			items, _ := value.([]map[string]any)
			for i, item := range items {
				errs = append(errs, fld.nested.validate(ctx, item, fieldPath.Index(i), finalize)...)
			}
		case mapKind:
			items, _ := value.(map[string]map[string]any)
			for _, key := range slices.Sorted(maps.Keys(items)) {
				errs = append(errs, fld.nested.validate(ctx, items[key], fieldPath.Key(key), finalize)...)
			}
		default:
			if fld.validate != "" {
				errs = append(errs, strata.ValidateSetting(ctx, fieldPath, &value, false, finalize,
					validate.Tag[any](fld.validate),
				)...)
			}
		}
	}

	return errs
}

// finalize merges defaults, the values and environment variables,
// then finalizes the nested configurations and runs transforms.
func (s *structInfo) finalize(ctx context.Context, values map[string]any, environ env.Environ) (map[string]any, error) {
	defaults, err := s.defaults(false)
	if err != nil {
		return nil, err
	}
	finalized, err := s.merge(ctx, defaults, values)
	if err != nil {
		return nil, err
	}
	envs, err := s.env(environ, false)
	if err != nil {
		return nil, err
	}
	if finalized, err = s.merge(ctx, finalized, envs); err != nil {
		return nil, err
	}

	for _, fld := range s.fields {
		value, ok := finalized[fld.key]
		switch fld.kind {
		case structKind:
			nested, _ := value.(map[string]any)
			if nested, err = fld.nested.finalize(ctx, nested, environ); err != nil {
				return nil, err
			}
			if len(nested) > 0 {
				finalized[fld.key] = nested
			}
		case pointerKind:
			if !ok {
				continue
			}
			nested, _ := value.(map[string]any)
			if finalized[fld.key], err = fld.nested.finalize(ctx, nested, environ); err != nil {
				return nil, err
			}
		case sliceKind:
			if !ok {
				continue
			}
			items, _ := value.([]map[string]any)
			result := make([]map[string]any, 0, len(items))
			for _, item := range items {
				item, err = fld.nested.finalize(ctx, item, environ)
				if err != nil {
					return nil, err
				}
				result = append(result, item)
			}
			finalized[fld.key] = result
		case mapKind:
			if !ok {
				continue
			}
			items, _ := value.(map[string]map[string]any)
			result := make(map[string]map[string]any, len(items))
			for key, item := range items {
				if result[key], err = fld.nested.finalize(ctx, item, environ); err != nil {
					return nil, err
				}
			}
			finalized[fld.key] = result
		case leafKind:
			if !ok || fld.transform == "" {
				continue
			}
			if finalized[fld.key], err = transform(ctx, fld.transform, value); err != nil {
				return nil, err
			}
		}
	}

	return finalized, nil
}
