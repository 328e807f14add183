// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata_test

import (
	"context"
	"errors"

	"github.com/nil-go/strata"
	"github.com/nil-go/strata/env"
	"github.com/nil-go/strata/merge"
	"github.com/nil-go/strata/validate"
)

type AppConfig struct {
	Extends    strata.ExtendsFrom
	Req        string
	ReqDefault string
	Host       string
	Port       int
	Values     []int
	List       []ItemConfig
	Map        map[string]ItemConfig
	Nested     *NestedConfig
}

func (c *AppConfig) FromPartial(partial PartialAppConfig) {
	c.Req = value(partial.Req)
	c.ReqDefault = value(partial.ReqDefault)
	c.Host = value(partial.Host)
	c.Port = value(partial.Port)
	c.Values = partial.Values
	for _, item := range partial.List {
		var config ItemConfig
		config.FromPartial(item)
		c.List = append(c.List, config)
	}
	for key, item := range partial.Map {
		if c.Map == nil {
			c.Map = make(map[string]ItemConfig)
		}
		var config ItemConfig
		config.FromPartial(item)
		c.Map[key] = config
	}
	if partial.Nested != nil {
		c.Nested = &NestedConfig{}
		c.Nested.FromPartial(*partial.Nested)
	}
}

type PartialAppConfig struct {
	Extends    *strata.ExtendsFrom          `config:"extends"`
	Req        *string                      `config:"req"`
	ReqDefault *string                      `config:"req_default"`
	Host       *string                      `config:"host"`
	Port       *int                         `config:"port"`
	Values     []int                        `config:"values"`
	List       []PartialItemConfig          `config:"list"`
	Map        map[string]PartialItemConfig `config:"map"`
	Nested     *PartialNestedConfig         `config:"nested"`
}

func (PartialAppConfig) DefaultValues(context.Context) (PartialAppConfig, error) {
	port, err := strata.ParseDefault[int]("8080")
	if err != nil {
		return PartialAppConfig{}, err
	}

	return PartialAppConfig{
		ReqDefault: strata.Ptr("abc"),
		Host:       strata.Ptr("localhost"),
		Port:       &port,
	}, nil
}

func (PartialAppConfig) EnvValues(environ env.Environ) (PartialAppConfig, error) {
	var (
		partial PartialAppConfig
		errs    [3]error
	)
	partial.Host, errs[0] = strata.DefaultFromEnv[string](environ, "APP_HOST")
	partial.Port, errs[1] = strata.DefaultFromEnv[int](environ, "APP_PORT")
	var values *[]int
	values, errs[2] = strata.ParseEnv(environ, "APP_VALUES", func(value string) ([]int, error) {
		var ints []int
		for _, item := range env.SplitComma(value) {
			parsed, err := strata.ParseDefault[int](item)
			if err != nil {
				return nil, err
			}
			ints = append(ints, parsed)
		}

		return ints, nil
	})
	if values != nil {
		partial.Values = *values
	}

	return partial, errors.Join(errs[:]...)
}

func (p PartialAppConfig) ExtendsFrom() strata.ExtendsFrom {
	if p.Extends == nil {
		return strata.ExtendsFrom{}
	}

	return *p.Extends
}

func (p PartialAppConfig) Merge(ctx context.Context, next PartialAppConfig) (PartialAppConfig, error) {
	var errs [9]error
	p.Extends, errs[0] = strata.MergeSetting(ctx, p.Extends, next.Extends, nil)
	p.Req, errs[1] = strata.MergeSetting(ctx, p.Req, next.Req, nil)
	p.ReqDefault, errs[2] = strata.MergeSetting(ctx, p.ReqDefault, next.ReqDefault, nil)
	p.Host, errs[3] = strata.MergeSetting(ctx, p.Host, next.Host, nil)
	p.Port, errs[4] = strata.MergeSetting(ctx, p.Port, next.Port, merge.Replace[int])
	p.Values, errs[5] = strata.MergeSlice(ctx, p.Values, next.Values, merge.AppendSlice[[]int])
	p.List, errs[6] = strata.MergeSlice(ctx, p.List, next.List, nil)
	p.Map, errs[7] = strata.MergeMap(ctx, p.Map, next.Map, merge.Map[map[string]PartialItemConfig])
	p.Nested, errs[8] = strata.MergePartialSetting(ctx, p.Nested, next.Nested)

	return p, errors.Join(errs[:]...)
}

func (p PartialAppConfig) ValidateWithPath(ctx context.Context, path strata.Path, finalize bool) []*strata.SettingError {
	var errs []*strata.SettingError
	errs = append(errs, strata.ValidateSetting(ctx, path.Key("extends"), p.Extends, false, finalize,
		strata.ValidateExtendsFrom)...)
	errs = append(errs, strata.ValidateSetting(ctx, path.Key("host"), p.Host, false, finalize,
		validate.MinLength[string](1))...)
	errs = append(errs, strata.ValidateSetting(ctx, path.Key("port"), p.Port, false, finalize,
		validate.InRange(1, 65535))...)
	errs = append(errs, strata.ValidateSlice(ctx, path.Key("values"), p.Values, false, finalize,
		validate.MaxLength[[]int](10))...)
	errs = append(errs, strata.ValidateNestedSlice(ctx, path.Key("list"), p.List, finalize)...)
	errs = append(errs, strata.ValidateNestedMap(ctx, path.Key("map"), p.Map, finalize)...)
	errs = append(errs, strata.ValidateNested(ctx, path.Key("nested"), p.Nested, false, finalize)...)

	return errs
}

func (p PartialAppConfig) Finalize(ctx context.Context, environ env.Environ) (PartialAppConfig, error) {
	partial, err := strata.FinalizePartial(ctx, p, environ)
	if err != nil {
		return partial, err
	}

	var errs [3]error
	partial.List, errs[0] = strata.FinalizeNestedSlice(ctx, partial.List, environ)
	partial.Map, errs[1] = strata.FinalizeNestedMap(ctx, partial.Map, environ)
	partial.Nested, errs[2] = strata.FinalizeNested(ctx, partial.Nested, environ)

	return partial, errors.Join(errs[:]...)
}

type ItemConfig struct {
	String1 string
	String2 string
}

func (c *ItemConfig) FromPartial(partial PartialItemConfig) {
	c.String1 = value(partial.String1)
	c.String2 = value(partial.String2)
}

type PartialItemConfig struct {
	String1 *string `config:"string1"`
	String2 *string `config:"string2"`
}

func (PartialItemConfig) DefaultValues(context.Context) (PartialItemConfig, error) {
	return PartialItemConfig{}, nil
}

func (PartialItemConfig) EnvValues(env.Environ) (PartialItemConfig, error) {
	return PartialItemConfig{}, nil
}

func (PartialItemConfig) ExtendsFrom() strata.ExtendsFrom {
	return strata.ExtendsFrom{}
}

func (p PartialItemConfig) Merge(ctx context.Context, next PartialItemConfig) (PartialItemConfig, error) {
	var errs [2]error
	p.String1, errs[0] = strata.MergeSetting(ctx, p.String1, next.String1, nil)
	p.String2, errs[1] = strata.MergeSetting(ctx, p.String2, next.String2, nil)

	return p, errors.Join(errs[:]...)
}

func (p PartialItemConfig) ValidateWithPath(ctx context.Context, path strata.Path, finalize bool) []*strata.SettingError {
	var errs []*strata.SettingError
	errs = append(errs, strata.ValidateSetting(ctx, path.Key("string1"), p.String1, true, finalize)...)
	errs = append(errs, strata.ValidateSetting(ctx, path.Key("string2"), p.String2, false, finalize,
		validate.MinLength[string](3))...)

	return errs
}

func (p PartialItemConfig) Finalize(ctx context.Context, environ env.Environ) (PartialItemConfig, error) {
	return strata.FinalizePartial(ctx, p, environ)
}

type NestedConfig struct {
	Enabled bool
	Level   string
}

func (c *NestedConfig) FromPartial(partial PartialNestedConfig) {
	c.Enabled = value(partial.Enabled)
	c.Level = value(partial.Level)
}

type PartialNestedConfig struct {
	Enabled *bool   `config:"enabled"`
	Level   *string `config:"level"`
}

func (PartialNestedConfig) DefaultValues(context.Context) (PartialNestedConfig, error) {
	return PartialNestedConfig{Level: strata.Ptr("info")}, nil
}

func (PartialNestedConfig) EnvValues(environ env.Environ) (PartialNestedConfig, error) {
	level, err := strata.DefaultFromEnv[string](environ, "APP_NESTED_LEVEL")

	return PartialNestedConfig{Level: level}, err
}

func (PartialNestedConfig) ExtendsFrom() strata.ExtendsFrom {
	return strata.ExtendsFrom{}
}

func (p PartialNestedConfig) Merge(ctx context.Context, next PartialNestedConfig) (PartialNestedConfig, error) {
	var errs [2]error
	p.Enabled, errs[0] = strata.MergeSetting(ctx, p.Enabled, next.Enabled, nil)
	p.Level, errs[1] = strata.MergeSetting(ctx, p.Level, next.Level, nil)

	return p, errors.Join(errs[:]...)
}

func (p PartialNestedConfig) ValidateWithPath(ctx context.Context, path strata.Path, finalize bool) []*strata.SettingError {
	return strata.ValidateSetting(ctx, path.Key("level"), p.Level, false, finalize,
		validate.Tag[string]("oneof=debug info warn error"))
}

func (p PartialNestedConfig) Finalize(ctx context.Context, environ env.Environ) (PartialNestedConfig, error) {
	return strata.FinalizePartial(ctx, p, environ)
}

func value[V any](pointer *V) V {
	if pointer == nil {
		var zero V

		return zero
	}

	return *pointer
}
