// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package cache

import (
	"bytes"
	"sync"
)

// Memory is a cache that keeps the content in memory.
//
// To create a new Memory, call [NewMemory].
type Memory struct {
	metrics *metrics

	entries map[string][]byte
	mutex   sync.RWMutex
}

// NewMemory creates a Memory with the given Option(s).
func NewMemory(opts ...Option) *Memory {
	option := apply(opts)

	return &Memory{
		metrics: option.metrics,
		entries: make(map[string][]byte),
	}
}

// Read returns the content cached for the URL.
func (m *Memory) Read(url string) ([]byte, bool, error) {
	m.mutex.RLock()
	content, ok := m.entries[url]
	m.mutex.RUnlock()

	if !ok {
		m.metrics.miss()

		return nil, false, nil
	}
	m.metrics.hit()

	return bytes.Clone(content), true, nil
}

// Write caches the content for the URL.
func (m *Memory) Write(url string, content []byte) error {
	m.mutex.Lock()
	m.entries[url] = bytes.Clone(content)
	m.mutex.Unlock()
	m.metrics.write()

	return nil
}

// Len returns the number of cached URLs.
func (m *Memory) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.entries)
}

func (m *Memory) String() string {
	return "memory"
}
