// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

/*
Package derive implements strata.PartialConfig for plain structs by reflection,
so a configuration type needs struct tags instead of a hand-written partial.

The settings of T are described with the following tags:

	config:"name"                  key in documents, defaults to the field name with a lower-case first letter
	default:"value"                default value, converted to the type of the field
	env:"KEY"                      environment variable overriding the setting, lists are comma separated
	merge:"append"                 merge strategy: append, prepend, replace, preserve, discard, map, set,
	                               or a name registered with RegisterMerge
	validate:"required,hostname"   go-playground/validator tags run against the value
	setting:"required,extend"      options: required, extend, nested, hidden, transform=name
	doc:"Description."             description in generated schemas
	deprecated:"reason"            deprecation note in generated schemas

Nested structs, pointers to structs, slices of structs and maps of structs keyed by string
are nested configurations. A pointer to a struct is optional: it stays nil until a layer sets it,
and gets its defaults when the loader finalizes it.

A key in a document that matches no setting fails the load, unless T implements strata.Lenient.

The partial is loaded with a strata.Loader created by NewLoader:

	loader := derive.NewLoader[AppConfig](strata.WithEnviron(env.WithPrefix(env.OS(), "APP_")))
	if err := loader.File("config.yml"); err != nil {
		// Handle error here.
	}
	result, err := loader.Load()

Partial[T] implements schema.Schematic, so the schema of the partial is generated
under the name of T prefixed with Partial.
*/
package derive
