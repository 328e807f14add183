// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package convert_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nil-go/strata/internal/assert"
	"github.com/nil-go/strata/internal/convert"
)

func TestConverter(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		opts        []convert.Option
		from        any
		to          any
		expected    any
		err         string
	}{
		{
			description: "to is nil",
			err:         "to must be a pointer",
		},
		{
			description: "to is not a pointer",
			to:          struct{}{},
			err:         "to must be a pointer",
		},
		{
			description: "to is a nil pointer",
			from:        "str",
			to:          (*string)(nil),
			err:         "to must be addressable (a pointer)",
		},
		{
			description: "from is nil",
			from:        nil,
			to:          pointer("str"),
			expected:    pointer("str"),
		},
		{
			description: "from is typed nil",
			from:        (*string)(nil),
			to:          pointer("str"),
			expected:    pointer("str"),
		},
		{
			description: "string to []string (hook)",
			opts: []convert.Option{
				convert.WithHook[string, []string](func(f string) ([]string, error) {
					return strings.Split(f, ","), nil
				}),
			},
			from:     "a,b,c",
			to:       pointer([]string(nil)),
			expected: pointer([]string{"a", "b", "c"}),
		},
		{
			description: "string to duration",
			opts: []convert.Option{
				convert.WithHook[string, time.Duration](time.ParseDuration),
			},
			from:     "2s",
			to:       pointer(time.Duration(0)),
			expected: pointer(2 * time.Second),
		},
		{
			description: "string to duration (with unsupported hook)",
			opts: []convert.Option{
				convert.WithHook[any, any](func(any, any) error {
					return errors.ErrUnsupported
				}),
				convert.WithHook[string, time.Duration](time.ParseDuration),
			},
			from:     "2s",
			to:       pointer(time.Duration(0)),
			expected: pointer(2 * time.Second),
		},
		{
			description: "string to bool",
			from:        "true",
			to:          pointer(false),
			expected:    pointer(true),
		},
		{
			description: "string to bool (invalid)",
			from:        "yes!",
			to:          pointer(false),
			err:         `cannot parse '' as bool: strconv.ParseBool: parsing "yes!": invalid syntax`,
		},
		{
			description: "string to int",
			from:        "0x10",
			to:          pointer(0),
			expected:    pointer(16),
		},
		{
			description: "string to int (invalid)",
			from:        "abc",
			to:          pointer(0),
			err:         `cannot parse '' as int: strconv.ParseInt: parsing "abc": invalid syntax`,
		},
		{
			description: "negative int to uint",
			from:        -1,
			to:          pointer(uint(0)),
			err:         "cannot parse '', -1 overflows uint",
		},
		{
			description: "string to float",
			from:        "1.5",
			to:          pointer(0.0),
			expected:    pointer(1.5),
		},
		{
			description: "int to string",
			from:        42,
			to:          pointer(""),
			expected:    pointer("42"),
		},
		{
			description: "string to pointer",
			from:        "8080",
			to:          pointer((*int)(nil)),
			expected:    pointer(pointer(8080)),
		},
		{
			description: "string slice to int slice",
			from:        []string{"1", "2"},
			to:          pointer([]int(nil)),
			expected:    pointer([]int{1, 2}),
		},
		{
			description: "string slice to int slice (invalid)",
			from:        []string{"1", "x"},
			to:          pointer([]int(nil)),
			err:         `cannot parse '[1]' as int: strconv.ParseInt: parsing "x": invalid syntax`,
		},
		{
			description: "single value lifted into slice",
			from:        "a",
			to:          pointer([]string(nil)),
			expected:    pointer([]string{"a"}),
		},
		{
			description: "map to map",
			from:        map[string]string{"a": "1"},
			to:          pointer(map[string]int(nil)),
			expected:    pointer(map[string]int{"a": 1}),
		},
		{
			description: "string to map",
			from:        "a",
			to:          pointer(map[string]int(nil)),
			err:         "'' expected a map, got 'string'",
		},
		{
			description: "map to bool",
			from:        map[string]string{},
			to:          pointer(false),
			err:         "'' expected type 'bool', got unconvertible type 'map[string]string', value: 'map[]'",
		},
		{
			description: "text unmarshaler (default converter)",
			from:        "sky",
			to:          pointer(Unknown),
			expected:    pointer(Sky),
		},
		{
			description: "to struct (unsupported)",
			from:        "str",
			to:          pointer(struct{}{}),
			err:         ": unsupported type: struct",
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			converter := convert.Default
			if len(testcase.opts) > 0 {
				converter = convert.New(testcase.opts...)
			}
			err := converter.Convert(testcase.from, testcase.to)
			if testcase.err != "" {
				assert.EqualError(t, err, testcase.err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testcase.expected, testcase.to)
			}
		})
	}
}

func pointer[T any](v T) *T { return &v }

type Enum int

const (
	Unknown Enum = iota
	Sky
	Land
)

func (e *Enum) UnmarshalText(text []byte) error {
	switch string(text) {
	case "sky":
		*e = Sky
	case "land":
		*e = Land
	default:
		*e = Unknown
	}

	return nil
}
