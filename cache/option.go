// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package cache

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WithMetrics registers the cache counters to the given registerer.
//
// The counters are shared by caches registered to the same registerer.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(options *options) {
		options.metrics = newMetrics(registerer)
	}
}

// WithClock provides the clock used to decide whether a Dir entry is expired.
//
// The default clock is time.Now.
func WithClock(now func() time.Time) Option {
	return func(options *options) {
		options.now = now
	}
}

// Option configures a cache with specific options.
type Option func(*options)

type options struct {
	metrics *metrics
	now     func() time.Time
}

func apply(opts []Option) options {
	option := &options{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(option)
	}

	return *option
}
