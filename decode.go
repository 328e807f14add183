// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

import (
	"errors"
	"fmt"
	"reflect"
)

// Decoder is implemented by the pointer of partial configurations
// that decode a parsed document themselves instead of field by field,
// e.g. derive.Partial.
//
// A failure should be returned as *format.Error so it can be located in the content.
type Decoder interface {
	DecodeDocument(values map[string]any, location, content string) error
}

// Lenient is implemented by partial configurations that ignore settings
// matching no field instead of failing to parse.
type Lenient interface {
	AllowUnknownSettings() bool
}

// AllowsUnknownSettings reports whether the partial configuration, or the value it points to,
// implements Lenient and allows unknown settings.
func AllowsUnknownSettings(partial any) bool {
	if lenient, ok := partial.(Lenient); ok {
		return lenient.AllowUnknownSettings()
	}
	if value := reflect.ValueOf(partial); value.Kind() == reflect.Pointer && !value.IsNil() {
		if lenient, ok := value.Elem().Interface().(Lenient); ok {
			return lenient.AllowUnknownSettings()
		}
	}

	return false
}

// ParseExtendsFrom converts a string or a list of strings from a parsed document into ExtendsFrom.
func ParseExtendsFrom(data any) (ExtendsFrom, error) {
	switch value := data.(type) {
	case ExtendsFrom:
		return value, nil
	case string:
		return ExtendsString(value), nil
	case []string:
		return ExtendsList(value...), nil
	case []any:
		values := make([]string, 0, len(value))
		for i, item := range value {
			str, ok := item.(string)
			if !ok {
				return ExtendsFrom{}, fmt.Errorf("item %d is %T, expected a string", i, item) //nolint:err113
			}
			values = append(values, str)
		}

		return ExtendsList(values...), nil
	case nil:
		return ExtendsFrom{}, nil
	default:
		return ExtendsFrom{}, errExtendsFromType
	}
}

// ExtendsFromHook is the mapstructure decode hook for ExtendsFrom settings.
func ExtendsFromHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeFor[ExtendsFrom]() {
		return data, nil
	}

	return ParseExtendsFrom(data)
}

var errExtendsFromType = errors.New("expected a string or a list of strings")
