// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package validate provides validators for setting values.
//
// A validator returns an error whose message describes why the value is invalid.
// The loader reports it together with the path of the setting.
// Format checks are delegated to github.com/go-playground/validator/v10.
package validate

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Func validates the value of a setting.
type Func[T any] func(ctx context.Context, value T) error

// Alphanumeric requires only ASCII letters and digits.
func Alphanumeric(_ context.Context, value string) error {
	return check(value, "alphanum", "must only contain alphanumeric characters")
}

// ASCII requires only ASCII characters.
func ASCII(_ context.Context, value string) error {
	return check(value, "ascii", "must only contain ASCII characters")
}

// Email requires a valid email address.
func Email(_ context.Context, value string) error {
	return check(value, "email", "must be a valid email address")
}

// IP requires a valid IPv4 or IPv6 address.
func IP(_ context.Context, value string) error {
	return check(value, "ip", "must be a valid IP address")
}

// IPv4 requires a valid IPv4 address.
func IPv4(_ context.Context, value string) error {
	return check(value, "ipv4", "must be a valid IPv4 address")
}

// IPv6 requires a valid IPv6 address.
func IPv6(_ context.Context, value string) error {
	return check(value, "ipv6", "must be a valid IPv6 address")
}

// URL requires a valid absolute URL.
func URL(_ context.Context, value string) error {
	return check(value, "url", "must be a valid URL")
}

// URLSecure requires a valid https URL.
func URLSecure(ctx context.Context, value string) error {
	if err := URL(ctx, value); err != nil {
		return err
	}
	if !strings.HasPrefix(value, "https://") {
		return errors.New("only secure URLs are allowed") //nolint:err113
	}

	return nil
}

// Contains requires the value to contain the given substring.
func Contains(substr string) Func[string] {
	return func(_ context.Context, value string) error {
		return check(value, "contains="+substr, "must contain "+substr)
	}
}

// Regex requires the value to match the pattern. It panics if the pattern is invalid.
func Regex(pattern string) Func[string] {
	re := regexp.MustCompile(pattern)

	return func(_ context.Context, value string) error {
		if !re.MatchString(value) {
			return fmt.Errorf("must match pattern %s", pattern) //nolint:err113
		}

		return nil
	}
}

// MinLength requires a string, slice or map to have at least min items.
func MinLength[T any](minimum int) Func[T] {
	return func(_ context.Context, value T) error {
		if length(value) < minimum {
			return fmt.Errorf("length must be at least %d", minimum) //nolint:err113
		}

		return nil
	}
}

// MaxLength requires a string, slice or map to have at most max items.
func MaxLength[T any](maximum int) Func[T] {
	return func(_ context.Context, value T) error {
		if length(value) > maximum {
			return fmt.Errorf("length must be at most %d", maximum) //nolint:err113
		}

		return nil
	}
}

// InLength requires a string, slice or map to have between min and max items, inclusive.
func InLength[T any](minimum, maximum int) Func[T] {
	return func(_ context.Context, value T) error {
		if l := length(value); l < minimum || l > maximum {
			return fmt.Errorf("length must be between %d and %d", minimum, maximum) //nolint:err113
		}

		return nil
	}
}

// NotEmpty requires a string, slice or map to have at least one item.
func NotEmpty[T any](_ context.Context, value T) error {
	if length(value) == 0 {
		return errors.New("must not be empty") //nolint:err113
	}

	return nil
}

// InRange requires the value to be between min and max, inclusive.
func InRange[T cmp.Ordered](minimum, maximum T) Func[T] {
	return func(_ context.Context, value T) error {
		if value < minimum || value > maximum {
			return fmt.Errorf("must be between %v and %v", minimum, maximum) //nolint:err113
		}

		return nil
	}
}

// Tag validates the value with go-playground/validator tags, e.g. `required,hostname_port`.
func Tag[T any](tag string) Func[T] {
	return func(_ context.Context, value T) error {
		if err := engine().Var(value, tag); err != nil {
			return describe(err)
		}

		return nil
	}
}

func check(value string, tag, message string) error {
	if err := engine().Var(value, tag); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			return errors.New(message) //nolint:err113
		}

		return err
	}

	return nil
}

// describe renders validator errors as `failed "tag" validation`.
func describe(err error) error {
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return err
	}

	messages := make([]string, 0, len(invalid))
	for _, fieldErr := range invalid {
		message := fmt.Sprintf("failed %q validation", fieldErr.Tag())
		if fieldErr.Param() != "" {
			message = fmt.Sprintf("failed %q validation with %s", fieldErr.Tag(), fieldErr.Param())
		}
		messages = append(messages, message)
	}

	return errors.New(strings.Join(messages, ", ")) //nolint:err113
}

func length(value any) int {
	val := reflect.ValueOf(value)
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return 0
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.String:
		return len([]rune(val.String()))
	case reflect.Array, reflect.Chan, reflect.Map, reflect.Slice:
		return val.Len()
	default:
		return 0
	}
}

//nolint:gochecknoglobals
var engine = sync.OnceValue(func() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
})

// Engine returns the shared go-playground validator used by the package.
func Engine() *validator.Validate {
	return engine()
}
