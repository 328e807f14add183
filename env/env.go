// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package env provides the environment that partial configurations read
// their overrides from.
//
// Environ abstracts the process environment so a loader can run against
// a fixed set of variables in tests. The environment variables with empty value
// are treated as unset.
package env

import "os"

// Environ looks up environment variables.
type Environ interface {
	LookupEnv(key string) (string, bool)
}

// OS returns the Environ of the current process.
func OS() Environ { //nolint:ireturn
	return osEnviron{}
}

// Map returns an Environ backed by the given variables.
func Map(values map[string]string) Environ { //nolint:ireturn
	return mapEnviron(values)
}

// WithPrefix returns an Environ that prepends the prefix to every key before
// looking it up in the given Environ.
func WithPrefix(environ Environ, prefix string) Environ { //nolint:ireturn
	if environ == nil {
		environ = OS()
	}

	return prefixEnviron{environ: environ, prefix: prefix}
}

// Lookup looks up the key in the Environ, falling back to the process environment if it's nil.
func Lookup(environ Environ, key string) (string, bool) {
	if environ == nil {
		environ = OS()
	}

	value, ok := environ.LookupEnv(key)
	if !ok || value == "" {
		return "", false
	}

	return value, true
}

type osEnviron struct{}

func (osEnviron) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (osEnviron) String() string {
	return "env"
}

type mapEnviron map[string]string

func (m mapEnviron) LookupEnv(key string) (string, bool) {
	value, ok := m[key]

	return value, ok
}

func (mapEnviron) String() string {
	return "env:map"
}

type prefixEnviron struct {
	environ Environ
	prefix  string
}

func (p prefixEnviron) LookupEnv(key string) (string, bool) {
	return p.environ.LookupEnv(p.prefix + key)
}

func (p prefixEnviron) String() string {
	return "env:" + p.prefix
}
