// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package cache

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	hits   prometheus.Counter
	misses prometheus.Counter
	writes prometheus.Counter
}

func newMetrics(registerer prometheus.Registerer) *metrics {
	return &metrics{
		hits: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "strata",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of configuration sources read from the cache.",
		})),
		misses: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "strata",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total number of configuration sources missing from the cache.",
		})),
		writes: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "strata",
			Subsystem: "cache",
			Name:      "writes_total",
			Help:      "Total number of configuration sources written to the cache.",
		})),
	}
}

// register returns the collector already registered under the same name if there is one.
func register(registerer prometheus.Registerer, counter prometheus.Counter) prometheus.Counter { //nolint:ireturn
	if registerer == nil {
		return counter
	}

	if err := registerer.Register(counter); err != nil {
		var registered prometheus.AlreadyRegisteredError
		if errors.As(err, &registered) {
			if existing, ok := registered.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
	}

	return counter
}

func (m *metrics) hit() {
	if m != nil {
		m.hits.Inc()
	}
}

func (m *metrics) miss() {
	if m != nil {
		m.misses.Inc()
	}
}

func (m *metrics) write() {
	if m != nil {
		m.writes.Inc()
	}
}
