// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package derive_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nil-go/strata"
	"github.com/nil-go/strata/derive"
	"github.com/nil-go/strata/env"
	"github.com/nil-go/strata/format"
)

type ServerConfig struct {
	Extends  strata.ExtendsFrom       `config:"extends"`
	Host     string                   `config:"host" default:"localhost" env:"HOST" validate:"hostname"`
	Port     int                      `config:"port" default:"8080" env:"PORT" validate:"min=1,max=65535"`
	Timeout  time.Duration            `config:"timeout" default:"5s"`
	Tags     []string                 `config:"tags" env:"TAGS" merge:"append"`
	Labels   map[string]string        `config:"labels" merge:"map"`
	Token    string                   `config:"token" setting:"required"`
	Name     string                   `config:"name" setting:"transform=upper"`
	Log      LogConfig                `config:"log"`
	TLS      *TLSConfig               `config:"tls"`
	Routes   []RouteConfig            `config:"routes" merge:"append"`
	Backends map[string]BackendConfig `config:"backends"`
}

type LogConfig struct {
	Level string `config:"level" default:"info" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
}

type TLSConfig struct {
	Cert   string `config:"cert" setting:"required"`
	Verify bool   `config:"verify" default:"true"`
}

type RouteConfig struct {
	Path   string `config:"path" setting:"required"`
	Target string `config:"target" validate:"url"`
}

type BackendConfig struct {
	Weight int `config:"weight" default:"1" validate:"min=1"`
}

type CounterConfig struct {
	Count int `merge:"max"`
	Total int `merge:"sum"`
}

type BrokenConfig struct {
	Count int `config:"count" merge:"bogus"`
}

type BadDefaultConfig struct {
	Port int `config:"port" default:"http"`
}

type OuterConfig struct {
	Inner *InnerConfig `config:"inner"`
}

type InnerConfig struct {
	Tags  []string `config:"tags" default:"a" merge:"append"`
	Level string   `config:"level" default:"info"`
}

type PluginConfig struct {
	Name string `config:"name"`
}

func (PluginConfig) AllowUnknownSettings() bool { return true }

func init() {
	derive.RegisterTransform("upper", derive.Transform(func(_ context.Context, value string) (string, error) {
		return strings.ToUpper(value), nil
	}))
	derive.RegisterMerge("max", derive.Merge(func(_ context.Context, prev, next int) (*int, error) {
		return strata.Ptr(max(prev, next)), nil
	}))
	derive.RegisterMerge("sum", func(_ context.Context, prev, next any) (any, error) {
		return prev.(int) + next.(int), nil //nolint:forcetypeassert
	})
}

func load[T any](t *testing.T, environ map[string]string, sources ...string) (*strata.Result[derive.Config[T], derive.Partial[T]], error) {
	t.Helper()

	loader := derive.NewLoader[T](strata.WithEnviron(env.Map(environ)))
	for _, source := range sources {
		require.NoError(t, loader.Code(source, format.YAML))
	}

	return loader.Load()
}

func TestLoader_defaults(t *testing.T) {
	t.Parallel()

	result, err := load[ServerConfig](t, nil, "token: abc")
	require.NoError(t, err)
	assert.Equal(t, ServerConfig{
		Host:    "localhost",
		Port:    8080,
		Timeout: 5 * time.Second,
		Token:   "abc",
		Log:     LogConfig{Level: "info"},
	}, result.Config.Value)
}

func TestLoader_layers(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"base.yml": {Data: []byte(`
host: base.example.com
tags: [a]
labels:
  team: core
routes:
  - path: /a
`)},
		"app.yml": {Data: []byte(`
extends: base.yml
token: secret
tags: [b]
labels:
  env: prod
routes:
  - path: /b
    target: https://b.example.com
tls:
  cert: server.pem
backends:
  primary:
    weight: 3
  secondary: {}
`)},
	}

	loader := derive.NewLoader[ServerConfig](strata.WithEnviron(env.Map(nil)), strata.WithFS(fsys))
	require.NoError(t, loader.File("app.yml"))
	result, err := loader.Load()
	require.NoError(t, err)

	config := result.Config.Value
	assert.Equal(t, "base.example.com", config.Host)
	assert.Equal(t, []string{"a", "b"}, config.Tags)
	assert.Equal(t, map[string]string{"team": "core", "env": "prod"}, config.Labels)
	assert.Equal(t, []RouteConfig{{Path: "/a"}, {Path: "/b", Target: "https://b.example.com"}}, config.Routes)
	assert.Equal(t, &TLSConfig{Cert: "server.pem", Verify: true}, config.TLS)
	assert.Equal(t, map[string]BackendConfig{"primary": {Weight: 3}, "secondary": {Weight: 1}}, config.Backends)
	assert.Equal(t, strata.ExtendsFrom{}, config.Extends)

	require.Len(t, result.Layers, 2)
	assert.Equal(t, "base.yml", result.Layers[0].Source.String())
	extends := result.Layers[1].Partial.ExtendsFrom()
	assert.Equal(t, []string{"base.yml"}, extends.Sources())
}

func TestLoader_env(t *testing.T) {
	t.Parallel()

	result, err := load[ServerConfig](t, map[string]string{
		"HOST":      "env.example.com",
		"PORT":      "9000",
		"TAGS":      "x, y",
		"LOG_LEVEL": "debug",
	}, "token: abc\nhost: file.example.com\ntags: [a]")
	require.NoError(t, err)

	config := result.Config.Value
	assert.Equal(t, "env.example.com", config.Host)
	assert.Equal(t, 9000, config.Port)
	assert.Equal(t, []string{"a", "x", "y"}, config.Tags)
	assert.Equal(t, "debug", config.Log.Level)
}

func TestLoader_nestedDefaults(t *testing.T) {
	t.Parallel()

	result, err := load[OuterConfig](t, nil, "inner: {tags: [b]}")
	require.NoError(t, err)
	assert.Equal(t, &InnerConfig{Tags: []string{"a", "b"}, Level: "info"}, result.Config.Value.Inner)

	loader := derive.NewLoader[OuterConfig](strata.WithEnviron(env.Map(nil)))
	require.NoError(t, loader.Code("inner: {tags: [b]}", format.YAML))
	partial, err := loader.LoadPartial(context.Background())
	require.NoError(t, err)
	tags, _ := partial.Get("inner.tags")
	assert.Equal(t, []string{"b"}, tags)
	_, ok := partial.Get("inner.level")
	assert.False(t, ok)
}

func TestLoader_unknownSettings(t *testing.T) {
	t.Parallel()

	result, err := load[PluginConfig](t, nil, "name: cache\nsize: 10")
	require.NoError(t, err)
	assert.Equal(t, PluginConfig{Name: "cache"}, result.Config.Value)
}

func TestLoader_transform(t *testing.T) {
	t.Parallel()

	result, err := load[ServerConfig](t, nil, "token: abc\nname: gateway")
	require.NoError(t, err)
	assert.Equal(t, "GATEWAY", result.Config.Value.Name)
}

func TestLoader_registeredMerge(t *testing.T) {
	t.Parallel()

	result, err := load[CounterConfig](t, nil, "count: 5\ntotal: 1", "count: 3\ntotal: 2")
	require.NoError(t, err)
	assert.Equal(t, CounterConfig{Count: 5, Total: 3}, result.Config.Value)
}

func TestLoader_errors(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		load        func(*testing.T) error
		code        string
		message     string
	}{
		{
			description: "invalid layer",
			load: func(t *testing.T) error {
				t.Helper()

				_, err := load[ServerConfig](t, nil, `
port: 0
log:
  level: verbose
routes:
  - target: not a url
backends:
  b:
    weight: 0
`)

				return err
			},
			code: "config::validate::failed",
			message: `validate ServerConfig:
  port: failed "min" validation with 1
  log.level: failed "oneof" validation with debug info warn error
  routes[0].target: failed "url" validation
  backends.b.weight: failed "min" validation with 1`,
		},
		{
			description: "required settings",
			load: func(t *testing.T) error {
				t.Helper()

				_, err := load[ServerConfig](t, nil, "tls: {verify: false}\nroutes: [{target: 'https://a.example.com'}]")

				return err
			},
			code: "config::validate::failed",
			message: `validate ServerConfig:
  token: this setting is required
  tls.cert: this setting is required
  routes[0].path: this setting is required`,
		},
		{
			description: "invalid type",
			load: func(t *testing.T) error {
				t.Helper()

				_, err := load[ServerConfig](t, nil, "port: abc")

				return err
			},
			code:    "config::parse::failed",
			message: `parse ServerConfig: port: cannot parse 'port' as int: strconv.ParseInt: parsing "abc": invalid syntax`,
		},
		{
			description: "unknown setting",
			load: func(t *testing.T) error {
				t.Helper()

				_, err := load[OuterConfig](t, nil, "innr: {tags: [b]}")

				return err
			},
			code:    "config::parse::failed",
			message: `parse OuterConfig: innr: unknown setting`,
		},
		{
			description: "unknown nested setting",
			load: func(t *testing.T) error {
				t.Helper()

				_, err := load[ServerConfig](t, nil, "token: abc\ntls: {cert: server.pem, verfy: false}")

				return err
			},
			code:    "config::parse::failed",
			message: `parse ServerConfig: tls.verfy: unknown setting`,
		},
		{
			description: "invalid env",
			load: func(t *testing.T) error {
				t.Helper()

				_, err := load[ServerConfig](t, map[string]string{"PORT": "x"}, "token: abc")

				return err
			},
			code:    "config::env::invalid",
			message: `finalize ServerConfig: invalid environment variable PORT: cannot parse 'PORT' as int: strconv.ParseInt: parsing "x": invalid syntax`,
		},
		{
			description: "invalid default",
			load: func(t *testing.T) error {
				t.Helper()

				_, err := load[BadDefaultConfig](t, nil)

				return err
			},
			code: "config::default::invalid",
		},
		{
			description: "unknown merge strategy",
			load: func(t *testing.T) error {
				t.Helper()

				_, err := load[BrokenConfig](t, nil, "count: 1", "count: 2")

				return err
			},
			message: `merge BrokenConfig: unknown merge strategy "bogus"`,
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			err := testcase.load(t)
			require.Error(t, err)
			assert.Equal(t, testcase.code, strata.Code(err))
			if testcase.message != "" {
				assert.Equal(t, testcase.message, err.Error())
			}
		})
	}
}

func TestPartial_merge(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	loader := derive.NewLoader[ServerConfig](strata.WithEnviron(env.Map(nil)))
	require.NoError(t, loader.Code("port: 80\ntags: [a]", format.YAML))
	require.NoError(t, loader.Code(`{"tags": ["b"], "log": {"level": "warn"}}`, format.JSON))
	partial, err := loader.LoadPartial(ctx)
	require.NoError(t, err)

	port, ok := partial.Get("port")
	assert.True(t, ok)
	assert.Equal(t, 80, port)
	tags, _ := partial.Get("tags")
	assert.Equal(t, []string{"a", "b"}, tags)
	level, _ := partial.Get("log.level")
	assert.Equal(t, "warn", level)
	_, ok = partial.Get("host")
	assert.False(t, ok)

	defaults, err := partial.DefaultValues(ctx)
	require.NoError(t, err)
	level, _ = defaults.Get("log.level")
	assert.Equal(t, "info", level)
	_, ok = defaults.Get("tls")
	assert.False(t, ok)

	finalized, err := partial.Finalize(ctx, env.Map(nil))
	require.NoError(t, err)
	again, err := finalized.Finalize(ctx, env.Map(nil))
	require.NoError(t, err)
	host, _ := again.Get("host")
	assert.Equal(t, "localhost", host)
	level, _ = again.Get("log.level")
	assert.Equal(t, "warn", level)
	assert.True(t, derive.Partial[ServerConfig]{}.IsEmpty())
}

func TestPartial_finalized(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	loader := derive.NewLoader[ServerConfig](strata.WithEnviron(env.Map(nil)))
	require.NoError(t, loader.Code(`
token: abc
port: 80
tls: {cert: server.pem}
backends:
  primary: {}
`, format.YAML))
	partial, err := loader.LoadPartial(ctx)
	require.NoError(t, err)
	finalized, err := partial.Finalize(ctx, env.Map(nil))
	require.NoError(t, err)

	again, err := finalized.Finalize(ctx, env.Map(nil))
	require.NoError(t, err)
	assert.Equal(t, finalized, again)
	merged, err := finalized.Merge(ctx, finalized)
	require.NoError(t, err)
	assert.Equal(t, finalized, merged)

	var config derive.Config[ServerConfig]
	config.FromPartial(finalized)
	assert.Equal(t, ServerConfig{
		Host:     "localhost",
		Port:     80,
		Timeout:  5 * time.Second,
		Token:    "abc",
		Log:      LogConfig{Level: "info"},
		TLS:      &TLSConfig{Cert: "server.pem", Verify: true},
		Backends: map[string]BackendConfig{"primary": {Weight: 1}},
	}, config.Value)
}

func TestPartial_Settings(t *testing.T) {
	t.Parallel()

	settings := derive.Partial[ServerConfig]{}.Settings()
	assert.Equal(t, strata.Setting{Env: "HOST", TypeAlias: "string"}, settings["host"])
	assert.Equal(t, strata.Setting{TypeAlias: "[]string", Env: "TAGS"}, settings["tags"])
	assert.Equal(t, "LOG_LEVEL", settings["log"].Nested["level"].Env)
	assert.Equal(t, "derive_test.TLSConfig", settings["tls"].TypeAlias)
	assert.Contains(t, settings["backends"].Nested, "weight")

	counter := derive.Partial[CounterConfig]{}.Settings()
	assert.Contains(t, counter, "count")
	assert.Contains(t, counter, "total")
}

func TestPartial_notStruct(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, "derive: int is not a struct", func() {
		derive.Partial[int]{}.Settings()
	})
}

func TestExplain(t *testing.T) {
	t.Parallel()

	result, err := load[ServerConfig](t, nil,
		"host: alpha.example.com\ntoken: abcdef",
		"host: beta.example.com\ntoken: ghijkl\nlog: {level: warn}",
	)
	require.NoError(t, err)

	assert.Equal(t, "host has value[beta.example.com] that is loaded by layer[<code>].\n"+
		"Here are other value(layer)s:\n"+
		"  - alpha.example.com(<code>)\n\n", derive.Explain(result, "host"))
	assert.Equal(t, "token has value[******] that is loaded by layer[<code>].\n"+
		"Here are other value(layer)s:\n"+
		"  - ******(<code>)\n\n", derive.Explain(result, "token"))
	assert.Equal(t, "log.level has value[warn] that is loaded by layer[<code>].\n\n", derive.Explain(result, "log"))
	assert.Equal(t, "port has no configuration.\n\n", derive.Explain(result, "port"))
	assert.Equal(t, "port has no configuration.\n\n", derive.Explain[ServerConfig](nil, "port"))
}
