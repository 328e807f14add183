// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

// Layer is the partial configuration parsed from a single source.
type Layer[P any] struct {
	Source  Source
	Partial P
}

// Result is the outcome of loading a configuration.
type Result[T, P any] struct {
	// Config is the final configuration.
	Config T
	// Layers are the partial configurations in the order they were merged,
	// where the sources a source extends come before it.
	Layers []Layer[P]
}

// Cacher caches the content of URL sources.
type Cacher interface {
	// Read returns the content cached for the URL, and whether there is one.
	Read(url string) ([]byte, bool, error)
	// Write caches the content for the URL.
	Write(url string, content []byte) error
}
