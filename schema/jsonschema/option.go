// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package jsonschema

// WithMetaSchema provides the URI of the meta schema in `$schema`.
//
// The default is the draft-07 meta schema.
func WithMetaSchema(uri string) Option {
	return func(options *options) {
		options.metaSchema = uri
	}
}

// WithDefinitionsPath provides the prefix of references to definitions.
//
// The default is `#/definitions/`.
func WithDefinitionsPath(path string) Option {
	return func(options *options) {
		options.definitionsPath = path
	}
}

// WithIndent provides the indentation of the JSON output.
//
// The default is two spaces.
func WithIndent(indent string) Option {
	return func(options *options) {
		options.indent = indent
	}
}

// Option configures a Renderer with specific options.
type Option func(options *options)

type options Renderer
