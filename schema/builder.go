// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package schema

import "reflect"

// Builder builds a Schema step by step.
//
// To create a new Builder, call [NewBuilder].
type Builder struct {
	name        string
	description string
	typ         Type

	// Types being inferred, shared by the builders of nested types.
	inferring map[reflect.Type]bool
}

// NewBuilder creates a Builder of an unnamed schema of unknown type.
func NewBuilder() *Builder {
	return &Builder{inferring: make(map[reflect.Type]bool)}
}

func (b *Builder) Name(name string) *Builder {
	b.name = name

	return b
}

func (b *Builder) Description(description string) *Builder {
	b.description = description

	return b
}

func (b *Builder) Array(typ ArrayType) *Builder {
	b.typ = &typ

	return b
}

func (b *Builder) Boolean(typ BooleanType) *Builder {
	b.typ = &typ

	return b
}

func (b *Builder) Enum(typ EnumType) *Builder {
	b.typ = &typ

	return b
}

func (b *Builder) Float(typ FloatType) *Builder {
	b.typ = &typ

	return b
}

func (b *Builder) Integer(typ IntegerType) *Builder {
	b.typ = &typ

	return b
}

func (b *Builder) Literal(typ LiteralType) *Builder {
	b.typ = &typ

	return b
}

func (b *Builder) Object(typ ObjectType) *Builder {
	b.typ = &typ

	return b
}

func (b *Builder) String(typ StringType) *Builder {
	b.typ = &typ

	return b
}

func (b *Builder) Struct(typ StructType) *Builder {
	b.typ = &typ

	return b
}

func (b *Builder) Tuple(typ TupleType) *Builder {
	b.typ = &typ

	return b
}

func (b *Builder) Union(typ UnionType) *Builder {
	b.typ = &typ

	return b
}

// Nullable makes the type accept null.
//
// An unnamed union gets a null variant, other types are wrapped in a union with null.
func (b *Builder) Nullable() *Builder {
	if union, ok := b.typ.(*UnionType); ok && b.name == "" {
		if !union.HasNull() {
			union.Variants = append(union.Variants, Null())
		}

		return b
	}
	b.typ = &UnionType{Variants: []*Schema{New(b.current()), Null()}}

	return b
}

// Build creates the Schema.
func (b *Builder) Build() *Schema {
	return &Schema{
		Name:        b.name,
		Description: b.description,
		Type:        b.current(),
	}
}

// Infer builds the schema of the Go type, with the same rules as [For].
func (b *Builder) Infer(typ reflect.Type) *Schema {
	return b.infer(typ)
}

func (b *Builder) current() Type {
	if b.typ == nil {
		return &UnknownType{}
	}

	return b.typ
}

func (b *Builder) child() *Builder {
	return &Builder{inferring: b.inferring}
}
