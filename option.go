// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nil-go/strata/cache"
	"github.com/nil-go/strata/env"
)

// WithLogger provides the logger used to trace the loading.
//
// The default logger is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

// WithEnviron provides the environment variables that override the configuration.
//
// The default environ is the process environment.
func WithEnviron(environ env.Environ) Option {
	return func(options *options) {
		options.environ = environ
	}
}

// WithCacher provides the cache for the content of URL sources.
//
// The default cacher keeps the content in memory.
func WithCacher(cacher Cacher) Option {
	return func(options *options) {
		options.cacher = cacher
	}
}

// WithHelp provides the help text attached to parse and validation errors.
func WithHelp(help string) Option {
	return func(options *options) {
		options.help = help
	}
}

// WithRoot provides the directory that file locations are relative to in error messages.
func WithRoot(root string) Option {
	return func(options *options) {
		options.root = root
	}
}

// WithFetcher registers the fetcher for the URLs with the given scheme, e.g. `s3`.
//
// The URLs with a registered scheme are treated as secure.
func WithFetcher(scheme string, fetcher Fetcher) Option {
	return func(options *options) {
		if options.fetchers == nil {
			options.fetchers = make(map[string]Fetcher)
		}
		options.fetchers[strings.ToLower(scheme)] = fetcher
	}
}

// WithHTTPClient provides the client that fetches http and https URLs.
//
// The default client is http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return func(options *options) {
		options.client = client
	}
}

// WithFS provides the file system that file sources are read from.
//
// The default is the file system of the operating system.
func WithFS(fsys fs.FS) Option {
	return func(options *options) {
		options.fsys = fsys
	}
}

// Option configures a Loader with specific options.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	environ  env.Environ
	cacher   Cacher
	help     string
	root     string
	fetchers map[string]Fetcher
	client   *http.Client
	fsys     fs.FS
}

func apply(opts []Option) options {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}

	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("strata")
	if option.environ == nil {
		option.environ = env.OS()
	}
	if option.cacher == nil {
		option.cacher = cache.NewMemory()
	}

	return *option
}

func (o options) schemes() []string {
	schemes := make([]string, 0, len(o.fetchers))
	for scheme := range o.fetchers {
		schemes = append(schemes, scheme)
	}

	return schemes
}
