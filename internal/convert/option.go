// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package convert

import (
	"encoding"
	"errors"
	"reflect"
	"time"
)

// WithHook registers a conversion from F to T that runs before the built-in conversions.
// A hook returning errors.ErrUnsupported falls through to the next hook.
func WithHook[F, T any, FN func(F) (T, error) | func(F, T) error](hook FN) Option {
	switch hookFunc := any(hook).(type) {
	case func(F) (T, error):
		return withHookFunc(func(f F, t *T) error {
			r, err := hookFunc(f)
			if err != nil {
				return err
			}
			*t = r

			return nil
		})
	case func(F, T) error:
		return withHookFunc[F, T](hookFunc)
	default:
		return func(*options) {}
	}
}

func withHookFunc[F, T any](hookFunc func(F, T) error) Option {
	return func(options *options) {
		if hookFunc == nil {
			return
		}

		options.hooks = append(options.hooks, hook{
			fromType: reflect.TypeFor[F](),
			toType:   reflect.TypeFor[T](),
			hook: func(f, t any) error {
				from, ok := f.(F)
				if !ok {
					return errors.ErrUnsupported
				}
				to, ok := t.(T)
				if !ok {
					return errors.ErrUnsupported
				}

				return hookFunc(from, to)
			},
		})
	}
}

// Default is the converter for setting values.
// It understands durations and encoding.TextUnmarshaler besides the primitive kinds.
var Default = New( //nolint:gochecknoglobals
	WithHook[string, time.Duration](time.ParseDuration),
	WithHook[string, encoding.TextUnmarshaler](func(f string, t encoding.TextUnmarshaler) error {
		return t.UnmarshalText([]byte(f))
	}),
)

type (
	// Option configures a Converter with specific options.
	Option  func(*options)
	options Converter
)
