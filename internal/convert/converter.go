// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package convert coerces raw setting values, usually strings from
// environment variables or default tags, into typed Go values.
package convert

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

type Converter struct {
	hooks []hook
}

func New(opts ...Option) *Converter {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}

	return (*Converter)(option)
}

// Convert converts from into the value pointed to by to.
// It is a no-op if from is nil.
func (c Converter) Convert(from, to any) error {
	toVal := reflect.ValueOf(to)
	if toVal.Kind() != reflect.Pointer {
		return errNotPointer
	}

	if toVal.IsNil() {
		return errNotAddressable
	}

	return c.convert("", from, toVal)
}

// ConvertAs is like Convert but names the value in error messages.
func (c Converter) ConvertAs(name string, from, to any) error {
	toVal := reflect.ValueOf(to)
	if toVal.Kind() != reflect.Pointer {
		return errNotPointer
	}

	if toVal.IsNil() {
		return errNotAddressable
	}

	return c.convert(name, from, toVal)
}

func (c Converter) convert(name string, from any, toVal reflect.Value) error { //nolint:cyclop
	if from == nil {
		return nil
	}

	fromVal := reflect.ValueOf(from)
	for fromVal.Kind() == reflect.Pointer {
		if fromVal.IsNil() {
			return nil
		}
		fromVal = fromVal.Elem()
	}

	for _, h := range c.hooks {
		if fromVal.Type().AssignableTo(h.fromType) && toVal.Type().AssignableTo(h.toType) {
			err := h.hook(fromVal.Interface(), toVal.Interface())
			if !errors.Is(err, errors.ErrUnsupported) {
				return err
			}
		}
	}

	toVal = reflect.Indirect(toVal)
	switch {
	case toVal.Kind() == reflect.Bool:
		return convertBool(name, fromVal, toVal)
	case toVal.CanInt():
		return convertInt(name, fromVal, toVal)
	case toVal.CanUint():
		return convertUint(name, fromVal, toVal)
	case toVal.CanFloat():
		return convertFloat(name, fromVal, toVal)
	case toVal.Kind() == reflect.String:
		return convertString(name, fromVal, toVal)
	case toVal.Kind() == reflect.Pointer:
		toVal.Set(reflect.New(toVal.Type().Elem()))

		return c.convert(name, fromVal.Interface(), toVal)
	case toVal.Kind() == reflect.Slice:
		return c.convertSlice(name, fromVal, toVal)
	case toVal.Kind() == reflect.Map:
		return c.convertMap(name, fromVal, toVal)
	case toVal.Kind() == reflect.Interface:
		toVal.Set(fromVal)

		return nil
	default:
		return fmt.Errorf("%s: unsupported type: %s", name, toVal.Kind()) //nolint:err113
	}
}

func convertBool(name string, fromVal, toVal reflect.Value) error {
	switch {
	case fromVal.Kind() == reflect.Bool:
		toVal.SetBool(fromVal.Bool())
	case fromVal.CanInt():
		toVal.SetBool(fromVal.Int() != 0)
	case fromVal.CanUint():
		toVal.SetBool(fromVal.Uint() != 0)
	case fromVal.CanFloat():
		toVal.SetBool(fromVal.Float() != 0)
	case fromVal.Kind() == reflect.String:
		from := fromVal.String()
		if from == "" {
			toVal.SetBool(false)

			return nil
		}
		b, err := strconv.ParseBool(from)
		if err != nil {
			return fmt.Errorf("cannot parse '%s' as bool: %w", name, err)
		}
		toVal.SetBool(b)
	default:
		return unconvertible(name, fromVal, toVal)
	}

	return nil
}

func convertInt(name string, fromVal, toVal reflect.Value) error {
	switch {
	case fromVal.Kind() == reflect.Bool:
		if fromVal.Bool() {
			toVal.SetInt(1)
		} else {
			toVal.SetInt(0)
		}
	case fromVal.CanInt():
		toVal.SetInt(fromVal.Int())
	case fromVal.CanUint():
		toVal.SetInt(int64(fromVal.Uint())) //nolint:gosec
	case fromVal.CanFloat():
		toVal.SetInt(int64(fromVal.Float()))
	case fromVal.Kind() == reflect.String:
		from := fromVal.String()
		if from == "" {
			toVal.SetInt(0)

			return nil
		}
		i, err := strconv.ParseInt(from, 0, toVal.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse '%s' as int: %w", name, err)
		}
		toVal.SetInt(i)
	default:
		return unconvertible(name, fromVal, toVal)
	}

	return nil
}

func convertUint(name string, fromVal, toVal reflect.Value) error {
	switch {
	case fromVal.Kind() == reflect.Bool:
		if fromVal.Bool() {
			toVal.SetUint(1)
		} else {
			toVal.SetUint(0)
		}
	case fromVal.CanInt():
		i := fromVal.Int()
		if i < 0 {
			return fmt.Errorf("cannot parse '%s', %d overflows uint", name, i) //nolint:err113
		}
		toVal.SetUint(uint64(i))
	case fromVal.CanUint():
		toVal.SetUint(fromVal.Uint())
	case fromVal.CanFloat():
		f := fromVal.Float()
		if f < 0 {
			return fmt.Errorf("cannot parse '%s', %f overflows uint", name, f) //nolint:err113
		}
		toVal.SetUint(uint64(f))
	case fromVal.Kind() == reflect.String:
		from := fromVal.String()
		if from == "" {
			toVal.SetUint(0)

			return nil
		}
		i, err := strconv.ParseUint(from, 0, toVal.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse '%s' as uint: %w", name, err)
		}
		toVal.SetUint(i)
	default:
		return unconvertible(name, fromVal, toVal)
	}

	return nil
}

func convertFloat(name string, fromVal, toVal reflect.Value) error {
	switch {
	case fromVal.Kind() == reflect.Bool:
		if fromVal.Bool() {
			toVal.SetFloat(1)
		} else {
			toVal.SetFloat(0)
		}
	case fromVal.CanInt():
		toVal.SetFloat(float64(fromVal.Int()))
	case fromVal.CanUint():
		toVal.SetFloat(float64(fromVal.Uint()))
	case fromVal.CanFloat():
		toVal.SetFloat(fromVal.Float())
	case fromVal.Kind() == reflect.String:
		from := fromVal.String()
		if from == "" {
			toVal.SetFloat(0)

			return nil
		}
		f, err := strconv.ParseFloat(from, toVal.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse '%s' as float: %w", name, err)
		}
		toVal.SetFloat(f)
	default:
		return unconvertible(name, fromVal, toVal)
	}

	return nil
}

func convertString(name string, fromVal, toVal reflect.Value) error {
	switch {
	case fromVal.Kind() == reflect.Bool:
		toVal.SetString(strconv.FormatBool(fromVal.Bool()))
	case fromVal.CanInt():
		toVal.SetString(strconv.FormatInt(fromVal.Int(), 10))
	case fromVal.CanUint():
		toVal.SetString(strconv.FormatUint(fromVal.Uint(), 10))
	case fromVal.CanFloat():
		toVal.SetString(strconv.FormatFloat(fromVal.Float(), 'f', -1, 64))
	case fromVal.Kind() == reflect.String:
		toVal.SetString(fromVal.String())
	case fromVal.Kind() == reflect.Slice && fromVal.Type().Elem().Kind() == reflect.Uint8:
		toVal.SetString(string(fromVal.Bytes()))
	default:
		return unconvertible(name, fromVal, toVal)
	}

	return nil
}

func (c Converter) convertSlice(name string, fromVal, toVal reflect.Value) error {
	switch fromVal.Kind() {
	case reflect.Array, reflect.Slice:
		slice := reflect.MakeSlice(toVal.Type(), fromVal.Len(), fromVal.Len())
		var errs []error
		for i := range fromVal.Len() {
			err := c.convert(name+"["+strconv.Itoa(i)+"]", fromVal.Index(i).Interface(), slice.Index(i).Addr())
			if err != nil {
				errs = append(errs, err)
			}
		}
		toVal.Set(slice)

		return errors.Join(errs...)
	default:
		// Lift a single value into a slice, i.e. a string becomes a string slice.
		return c.convertSlice(name, reflect.ValueOf([]any{fromVal.Interface()}), toVal)
	}
}

func (c Converter) convertMap(name string, fromVal, toVal reflect.Value) error {
	if fromVal.Kind() != reflect.Map {
		return fmt.Errorf("'%s' expected a map, got '%s'", name, fromVal.Kind()) //nolint:err113
	}

	mp := reflect.MakeMapWithSize(toVal.Type(), fromVal.Len())
	var errs []error
	for _, keyVal := range fromVal.MapKeys() {
		fieldName := name + "[" + fmt.Sprint(keyVal.Interface()) + "]"
		key := reflect.New(toVal.Type().Key())
		if err := c.convert(fieldName, keyVal.Interface(), key); err != nil {
			errs = append(errs, err)

			continue
		}
		value := reflect.New(toVal.Type().Elem())
		if err := c.convert(fieldName, fromVal.MapIndex(keyVal).Interface(), value); err != nil {
			errs = append(errs, err)

			continue
		}
		mp.SetMapIndex(key.Elem(), value.Elem())
	}
	toVal.Set(mp)

	return errors.Join(errs...)
}

func unconvertible(name string, fromVal, toVal reflect.Value) error {
	return fmt.Errorf( //nolint:err113
		"'%s' expected type '%s', got unconvertible type '%s', value: '%v'",
		name, toVal.Type(), fromVal.Type(), fromVal.Interface(),
	)
}

var (
	errNotPointer     = errors.New("to must be a pointer")
	errNotAddressable = errors.New("to must be addressable (a pointer)")
)

type hook struct {
	fromType reflect.Type
	toType   reflect.Type
	hook     func(from, to any) error
}
