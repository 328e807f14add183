// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package schema describes the shape of configuration types,
// and renders the descriptions into other languages such as JSON Schema or TypeScript.
//
// A Schema is built with a Builder, by implementing Schematic,
// or inferred from the struct tags of a Go type with For:
//
//	generator := schema.NewGenerator()
//	schema.Add[AppConfig](generator)
//	err := generator.Generate(file, jsonschema.New())
package schema

// Schema describes the metadata and shape of a type.
type Schema struct {
	// Name makes the schema a named type. Named schemas are rendered once
	// and referenced from the other schemas.
	Name        string
	Description string
	Deprecated  string
	Nullable    bool
	Type        Type
}

// New creates an unnamed schema of the given type.
func New(typ Type) *Schema {
	return &Schema{Type: typ}
}

// Null creates a null schema.
func Null() *Schema {
	return New(&NullType{})
}

// Unknown creates a schema that accepts any value.
func Unknown() *Schema {
	return New(&UnknownType{})
}

// IsNull reports whether the schema is the explicit null.
func (s *Schema) IsNull() bool {
	_, ok := s.Type.(*NullType)

	return ok
}

// IsStruct reports whether the schema is a struct.
func (s *Schema) IsStruct() bool {
	_, ok := s.Type.(*StructType)

	return ok
}

// Nullify makes the schema accept null.
//
// An unnamed union gets a null variant. Other types are wrapped in a union with null,
// and the name moves to the wrapped schema so it can still be referenced.
func (s *Schema) Nullify() {
	if s.Nullable {
		return
	}
	s.Nullable = true

	if union, ok := s.Type.(*UnionType); ok && s.Name == "" {
		if !union.HasNull() {
			union.Variants = append(union.Variants, Null())
		}

		return
	}

	inner := &Schema{
		Name:        s.Name,
		Description: s.Description,
		Deprecated:  s.Deprecated,
		Type:        s.Type,
	}
	s.Name = ""
	s.Type = &UnionType{Variants: []*Schema{inner, Null()}}
}

// Partialize marks the structs in the schema as partial.
// Arrays and objects are updated through their item types,
// and nullable unions through their non-null variants.
func (s *Schema) Partialize() {
	switch typ := s.Type.(type) {
	case *ArrayType:
		typ.Items.Partialize()
	case *ObjectType:
		typ.Value.Partialize()
	case *StructType:
		typ.Partial = true
	case *UnionType:
		typ.Partial = true
		if typ.HasNull() {
			for _, variant := range typ.Variants {
				if !variant.IsNull() {
					variant.Partialize()
				}
			}
		}
	}
}

// Default returns the default value of the schema, or nil if there is none.
// A union returns the default of its default variant, or of the first variant that has one.
func (s *Schema) Default() any {
	switch typ := s.Type.(type) {
	case *BooleanType:
		if typ.Default != nil {
			return *typ.Default
		}
	case *FloatType:
		if typ.Default != nil {
			return *typ.Default
		}
	case *IntegerType:
		if typ.Default != nil {
			return *typ.Default
		}
	case *StringType:
		if typ.Default != nil {
			return *typ.Default
		}
	case *EnumType:
		if typ.DefaultIndex != nil && *typ.DefaultIndex < len(typ.Values) {
			return typ.Values[*typ.DefaultIndex]
		}
	case *UnionType:
		if typ.DefaultIndex != nil && *typ.DefaultIndex < len(typ.Variants) {
			return typ.Variants[*typ.DefaultIndex].Default()
		}
		for _, variant := range typ.Variants {
			if value := variant.Default(); value != nil {
				return value
			}
		}
	}

	return nil
}

// Schematic is implemented by types that describe their own schema.
type Schematic interface {
	// SchemaName names the schema, or returns "" for an inline schema.
	SchemaName() string
	// BuildSchema builds the schema with the builder, which is already named.
	BuildSchema(builder *Builder) *Schema
}
