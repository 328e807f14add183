// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package derive

import (
	"context"
	"reflect"
	"strings"

	"github.com/nil-go/strata"
	"github.com/nil-go/strata/env"
	"github.com/nil-go/strata/format"
	"github.com/nil-go/strata/internal/maps"
)

// Partial is the partial configuration of the struct T.
//
// It holds the settings that are set in a nested map keyed by the document keys,
// where a missing key means unset. The zero value has every setting unset.
type Partial[T any] struct {
	values map[string]any
}

func (p Partial[T]) DefaultValues(context.Context) (Partial[T], error) {
	values, err := infoFor[T]().defaults(true)
	if err != nil {
		return Partial[T]{}, err
	}

	return Partial[T]{values: values}, nil
}

func (p Partial[T]) EnvValues(environ env.Environ) (Partial[T], error) {
	values, err := infoFor[T]().env(environ, true)
	if err != nil {
		return Partial[T]{}, err
	}

	return Partial[T]{values: values}, nil
}

func (p Partial[T]) ExtendsFrom() strata.ExtendsFrom {
	for _, fld := range infoFor[T]().fields {
		if fld.kind != extendKind {
			continue
		}
		if extends, ok := p.values[fld.key].(strata.ExtendsFrom); ok {
			return extends
		}
	}

	return strata.ExtendsFrom{}
}

func (p Partial[T]) Merge(ctx context.Context, next Partial[T]) (Partial[T], error) {
	values, err := infoFor[T]().merge(ctx, p.values, next.values)
	if err != nil {
		return Partial[T]{}, err
	}

	return Partial[T]{values: values}, nil
}

func (p Partial[T]) ValidateWithPath(ctx context.Context, path strata.Path, finalize bool) []*strata.SettingError {
	return infoFor[T]().validate(ctx, p.values, path, finalize)
}

func (p Partial[T]) Finalize(ctx context.Context, environ env.Environ) (Partial[T], error) {
	values, err := infoFor[T]().finalize(ctx, p.values, environ)
	if err != nil {
		return Partial[T]{}, err
	}

	return Partial[T]{values: values}, nil
}

// DecodeDocument decodes the parsed document into T to check the types,
// and keeps the typed value of every setting the document contains.
func (p *Partial[T]) DecodeDocument(values map[string]any, location, content string) error {
	var shadow T
	decode := format.Decode
	if strata.AllowsUnknownSettings(&shadow) {
		decode = format.DecodeAllowUnknown
	}
	if err := decode(values, &shadow, location, content, strata.ExtendsFromHook); err != nil {
		return err
	}
	p.values = infoFor[T]().collect(values, reflect.ValueOf(&shadow).Elem())

	return nil
}

// Settings describes the settings of T from its tags.
func (p Partial[T]) Settings() strata.SettingMap {
	return infoFor[T]().settings(make(map[reflect.Type]bool))
}

// Get returns the value of the setting under the dot-separated path, e.g. `server.port`.
// Nested configurations are returned as map[string]any.
func (p Partial[T]) Get(path string) (any, bool) {
	value := maps.Sub(p.values, strings.Split(path, "."))

	return value, value != nil
}

// IsEmpty reports whether no setting is set.
func (p Partial[T]) IsEmpty() bool {
	return len(p.values) == 0
}
