// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package cache provides caches for the content of remote configuration sources.
//
// A cache is keyed by the URL of the source. Memory keeps the content for the lifetime
// of the process, and Dir persists it on disk so it survives restarts until it expires.
// Both can report hits, misses and writes to Prometheus with WithMetrics.
package cache
