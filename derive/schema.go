// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package derive

import (
	"reflect"

	"github.com/nil-go/strata/schema"
)

const partialPrefix = "Partial"

// SchemaName names the schema of a layer after T, e.g. `PartialServerConfig`.
func (Partial[T]) SchemaName() string {
	return partialPrefix + Config[T]{}.ConfigName()
}

// BuildSchema builds the schema of a configuration layer of T,
// where every setting of T and of its nested configurations is optional.
func (p Partial[T]) BuildSchema(builder *schema.Builder) *schema.Schema {
	built := builder.Infer(reflect.TypeFor[T]())
	partialize(built)
	built.Name = p.SchemaName()

	return built
}

// partialize marks nested structs as partial and renames the named ones,
// so they do not collide with the schemas of the final configuration.
func partialize(built *schema.Schema) {
	if built.Name != "" {
		built.Name = partialPrefix + built.Name
	}

	switch typ := built.Type.(type) {
	case *schema.ReferenceType:
		typ.Name = partialPrefix + typ.Name
	case *schema.ArrayType:
		partialize(typ.Items)
	case *schema.ObjectType:
		partialize(typ.Value)
	case *schema.StructType:
		typ.Partial = true
		for _, field := range typ.Fields {
			partialize(field.Schema)
		}
	case *schema.UnionType:
		typ.Partial = true
		for _, variant := range typ.Variants {
			partialize(variant)
		}
	}
}
