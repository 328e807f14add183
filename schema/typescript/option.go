// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package typescript

// EnumFormat is the way an enum is declared.
type EnumFormat uint8

const (
	// Union declares a string union: `type Name = 'foo' | 'bar';`.
	Union EnumFormat = iota
	// Enum declares a native enum: `enum Name { Foo, Bar }`.
	Enum
	// ValuedEnum declares a native enum with values: `enum Name { Foo = 'foo', Bar = 'bar' }`.
	ValuedEnum
)

// ObjectFormat is the way a struct is declared.
type ObjectFormat uint8

const (
	// Interface declares `interface Name {}`.
	Interface ObjectFormat = iota
	// Type declares `type Name = {};`.
	Type
)

// WithEnumFormat provides the way enums with named variants are declared.
//
// The default is Union.
func WithEnumFormat(format EnumFormat) Option {
	return func(options *options) {
		options.enumFormat = format
	}
}

// WithObjectFormat provides the way structs are declared.
//
// The default is Interface.
func WithObjectFormat(format ObjectFormat) Option {
	return func(options *options) {
		options.objectFormat = format
	}
}

// WithConstEnum declares native enums as `const enum`.
func WithConstEnum() Option {
	return func(options *options) {
		options.constEnum = true
	}
}

// WithoutReferences renders every type inline instead of by name.
func WithoutReferences() Option {
	return func(options *options) {
		options.disableReferences = true
	}
}

// WithExcludedReferences skips the declarations of the named types.
func WithExcludedReferences(names ...string) Option {
	return func(options *options) {
		options.excludeReferences = append(options.excludeReferences, names...)
	}
}

// WithExternalTypes imports the named types from the module path
// instead of declaring them.
func WithExternalTypes(path string, names ...string) Option {
	return func(options *options) {
		if options.externalTypes == nil {
			options.externalTypes = make(map[string][]string)
		}
		options.externalTypes[path] = append(options.externalTypes[path], names...)
	}
}

// WithIndent provides the indentation of nested declarations.
//
// The default is a tab.
func WithIndent(indent string) Option {
	return func(options *options) {
		options.indent = indent
	}
}

// Option configures a Renderer with specific options.
type Option func(options *options)

type options Renderer
