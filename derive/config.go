// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package derive

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/nil-go/strata"
	"github.com/nil-go/strata/format"
)

// Config is the final configuration built from Partial[T].
type Config[T any] struct {
	Value T
}

// NewLoader creates a strata.Loader for the struct T with the given Option(s).
//
// The result holds T in Config.Value.
func NewLoader[T any](opts ...strata.Option) *strata.Loader[Config[T], Partial[T], *Config[T]] {
	return strata.NewLoader[Config[T], Partial[T]](opts...)
}

// FromPartial decodes the finalized partial into T. Unset settings are left with zero values
// and extend settings are dropped.
//
// It panics if the partial holds a value that does not fit T,
// which cannot happen for partials decoded by the loader.
func (c *Config[T]) FromPartial(partial Partial[T]) {
	var value T
	decoder, err := mapstructure.NewDecoder(
		&mapstructure.DecoderConfig{
			Result:           &value,
			WeaklyTypedInput: true,
			TagName:          format.TagName,
		},
	)
	if err == nil {
		err = decoder.Decode(infoFor[T]().exported(partial.values))
	}
	if err != nil {
		panic(fmt.Sprintf("derive: decode %s: %v", reflect.TypeFor[T](), err))
	}
	c.Value = value
}

// ConfigName names the configuration after T in diagnostics.
func (Config[T]) ConfigName() string {
	if name := reflect.TypeFor[T]().Name(); name != "" {
		return name
	}

	return reflect.TypeFor[T]().String()
}
