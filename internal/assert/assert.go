// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package assert

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func Equal[T any](tb testing.TB, expected, actual T) {
	tb.Helper()

	if !reflect.DeepEqual(expected, actual) {
		tb.Errorf("expected: %v; actual: %v", expected, actual)
	}
}

func NoError(tb testing.TB, err error) {
	tb.Helper()

	if err != nil {
		tb.Errorf("unexpected error: %v", err)
	}
}

func EqualError(tb testing.TB, err error, message string) {
	tb.Helper()

	switch {
	case err == nil:
		tb.Errorf("expected error: %v; actual: nil", message)
	case err.Error() != message:
		tb.Errorf("expected: %v; actual: %v", message, err.Error())
	}
}

func ErrorContains(tb testing.TB, err error, message string) {
	tb.Helper()

	switch {
	case err == nil:
		tb.Errorf("expected error containing: %v; actual: nil", message)
	case !strings.Contains(err.Error(), message):
		tb.Errorf("expected error containing: %v; actual: %v", message, err.Error())
	}
}

func ErrorIs(tb testing.TB, err, target error) {
	tb.Helper()

	if !errors.Is(err, target) {
		tb.Errorf("expected error: %v; actual: %v", target, err)
	}
}

func True(tb testing.TB, value bool) {
	tb.Helper()

	if !value {
		tb.Errorf("expected True")
	}
}

func Nil(tb testing.TB, value any) {
	tb.Helper()

	if value == nil {
		return
	}
	switch val := reflect.ValueOf(value); val.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		if val.IsNil() {
			return
		}
	default:
	}
	tb.Errorf("expected nil; actual: %v", value)
}
