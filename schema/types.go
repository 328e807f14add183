// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package schema

import "reflect"

// Type is the shape of a Schema.
//
// It is implemented only by the *XxxType types of this package,
// so a type switch over them is exhaustive.
type Type interface {
	isType()
}

type (
	// NullType is the explicit null.
	NullType struct{}

	// UnknownType accepts any value.
	UnknownType struct{}

	// ArrayType is a list of items of the same schema.
	ArrayType struct {
		Items *Schema
		// Contains requires at least one item to match instead of all.
		Contains  bool
		MinLength *int
		MaxLength *int
		Unique    bool
	}

	BooleanType struct {
		Default *bool
	}

	// EnumType is a closed set of literal values.
	EnumType struct {
		Values []any
		// Variants names the values. It is optional, and a named variant
		// holds a Literal schema.
		Variants     []*Field
		DefaultIndex *int
	}

	FloatType struct {
		// Kind is reflect.Float32 or reflect.Float64.
		Kind         reflect.Kind
		Default      *float64
		Enum         []float64
		Format       string
		Min          *float64
		MinExclusive *float64
		Max          *float64
		MaxExclusive *float64
		MultipleOf   *float64
	}

	IntegerType struct {
		// Kind is one of the integer kinds of reflect.
		Kind         reflect.Kind
		Default      *int64
		Enum         []int64
		Format       string
		Min          *int64
		MinExclusive *int64
		Max          *int64
		MaxExclusive *int64
		MultipleOf   *int64
	}

	// LiteralType is a single constant value: a bool, an integer, a float or a string.
	LiteralType struct {
		Value  any
		Format string
	}

	// ObjectType is a map with keys and values of the same schemas.
	ObjectType struct {
		Key       *Schema
		Value     *Schema
		MinLength *int
		MaxLength *int
		Required  []string
	}

	// ReferenceType points to the named schema.
	ReferenceType struct {
		Name string
	}

	// StructType is a record with named fields.
	StructType struct {
		Fields []*Field
		// Partial marks every field as optional, as in a configuration layer.
		Partial  bool
		Required []string
	}

	StringType struct {
		Default   *string
		Enum      []string
		Format    string
		MinLength *int
		MaxLength *int
		Pattern   string
	}

	// TupleType is a fixed length list with a schema per position.
	TupleType struct {
		Items []*Schema
	}

	UnionType struct {
		Variants     []*Schema
		Operator     UnionOperator
		Partial      bool
		DefaultIndex *int
	}
)

// UnionOperator tells how many variants of a union a value must match.
type UnionOperator uint8

const (
	AnyOf UnionOperator = iota
	OneOf
)

func (*NullType) isType()      {}
func (*UnknownType) isType()   {}
func (*ArrayType) isType()     {}
func (*BooleanType) isType()   {}
func (*EnumType) isType()      {}
func (*FloatType) isType()     {}
func (*IntegerType) isType()   {}
func (*LiteralType) isType()   {}
func (*ObjectType) isType()    {}
func (*ReferenceType) isType() {}
func (*StructType) isType()    {}
func (*StringType) isType()    {}
func (*TupleType) isType()     {}
func (*UnionType) isType()     {}

// HasNull reports whether one of the variants is null.
func (u *UnionType) HasNull() bool {
	for _, variant := range u.Variants {
		if variant.IsNull() {
			return true
		}
	}

	return false
}

// IsHidden reports whether every field is hidden.
func (s *StructType) IsHidden() bool {
	for _, field := range s.Fields {
		if !field.Hidden {
			return false
		}
	}

	return true
}

// Field describes a field of a struct or a variant of an enum.
type Field struct {
	Name    string
	Comment string
	Schema  *Schema
	// EnvVar is the environment variable that overrides the field.
	EnvVar     string
	Deprecated string
	Hidden     bool
	Nullable   bool
	Optional   bool
	ReadOnly   bool
	WriteOnly  bool
}
