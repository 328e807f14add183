// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

import (
	"context"
	"reflect"
	"slices"

	"github.com/nil-go/strata/env"
	"github.com/nil-go/strata/validate"
)

// PartialConfig is the contract of a configuration where every setting is optional.
// It describes what a single layer contributes to the final configuration.
//
// The zero value of a partial has every setting unset. Scalar settings are pointers,
// collections are nil until set, and nested configurations are pointers to their partials.
//
// The helpers in this package implement each method with a few lines per setting:
// MergeSetting and friends for Merge, ValidateSetting and friends for ValidateWithPath,
// DefaultFromEnv for EnvValues, and FinalizePartial for Finalize.
type PartialConfig[P any] interface {
	// DefaultValues returns the partial holding the default value of every setting.
	DefaultValues(ctx context.Context) (P, error)
	// EnvValues returns the partial holding the settings overridden by environment variables.
	EnvValues(environ env.Environ) (P, error)
	// ExtendsFrom returns the references to the configurations this one extends.
	ExtendsFrom() ExtendsFrom
	// Merge returns the receiver with the settings of next merged on top of it.
	Merge(ctx context.Context, next P) (P, error)
	// ValidateWithPath validates every set setting, prefixing the reported paths with the given path.
	// Unset required settings are only reported when finalize is true.
	ValidateWithPath(ctx context.Context, path Path, finalize bool) []*SettingError
	// Finalize merges defaults, the receiver and environment variables in that order.
	Finalize(ctx context.Context, environ env.Environ) (P, error)
}

// Config is the contract of the final configuration built from a finalized partial.
//
// It is implemented on the pointer of the configuration type.
type Config[P any] interface {
	FromPartial(partial P)
}

// Named is implemented by configuration types that name themselves in diagnostics.
// Otherwise, the name of the Go type is used.
type Named interface {
	ConfigName() string
}

func configName[T any]() string {
	var value T
	if named, ok := any(value).(Named); ok {
		return named.ConfigName()
	}
	if named, ok := any(&value).(Named); ok {
		return named.ConfigName()
	}

	if name := reflect.TypeFor[T]().Name(); name != "" {
		return name
	}

	return reflect.TypeFor[T]().String()
}

// ExtendsFrom holds the references to the configurations a configuration extends,
// either as a single string or as a list.
//
// The zero value is an empty list.
type ExtendsFrom struct {
	value  string
	list   []string
	single bool
}

// ExtendsString returns an ExtendsFrom holding a single reference.
func ExtendsString(value string) ExtendsFrom {
	return ExtendsFrom{value: value, single: true}
}

// ExtendsList returns an ExtendsFrom holding a list of references.
func ExtendsList(values ...string) ExtendsFrom {
	return ExtendsFrom{list: slices.Clone(values)}
}

// Sources returns the references in declaration order.
func (e ExtendsFrom) Sources() []string {
	if e.single {
		if e.value == "" {
			return nil
		}

		return []string{e.value}
	}

	return slices.Clone(e.list)
}

// IsString reports whether it holds a single reference.
func (e ExtendsFrom) IsString() bool {
	return e.single
}

// IsEmpty reports whether it holds no reference.
func (e ExtendsFrom) IsEmpty() bool {
	return len(e.Sources()) == 0
}

// Setting describes a setting for tooling, e.g. documentation and shell completion.
type Setting struct {
	// Env is the environment variable that overrides the setting.
	Env string
	// TypeAlias names the type of the setting.
	TypeAlias string
	// Nested describes the settings of a nested configuration.
	Nested SettingMap
}

// SettingMap describes the settings of a configuration by name.
type SettingMap map[string]Setting

// Describer is implemented by partial configurations that describe their settings.
type Describer interface {
	Settings() SettingMap
}

// ValidateExtendsFrom requires every reference to be a file path or a secure URL
// with the extension of a supported format.
func ValidateExtendsFrom(ctx context.Context, value ExtendsFrom) error {
	return validate.ExtendsList(ctx, value.Sources())
}
