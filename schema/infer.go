// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package schema

import (
	"encoding"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/nil-go/strata"
	"github.com/nil-go/strata/format"
)

//nolint:gochecknoglobals
var (
	schematicType       = reflect.TypeFor[Schematic]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	extendsFromType     = reflect.TypeFor[strata.ExtendsFrom]()
	durationType        = reflect.TypeFor[time.Duration]()
	timeType            = reflect.TypeFor[time.Time]()
	urlType             = reflect.TypeFor[url.URL]()
)

// For builds the schema of T.
//
// If T or *T implements Schematic, it builds the schema itself.
// Otherwise the schema is inferred by reflection:
//   - named structs become named schemas, so they are rendered as references;
//   - pointers become nullable;
//   - maps with struct{} values become arrays of unique items;
//   - time.Duration, time.Time, url.URL and encoding.TextUnmarshaler become strings.
//
// Struct fields follow the tags of package derive: `config`, `default`, `env`,
// `validate` and `setting`, plus `doc` and `deprecated` for documentation.
func For[T any]() *Schema {
	return NewBuilder().Infer(reflect.TypeFor[T]())
}

func (b *Builder) infer(typ reflect.Type) *Schema { //nolint:cyclop,funlen
	if typ.Kind() == reflect.Pointer {
		schema := b.infer(typ.Elem())
		schema.Nullify()

		return schema
	}
	if schema, ok := b.schematic(typ); ok {
		return schema
	}

	switch typ {
	case durationType:
		return New(&StringType{Format: "duration"})
	case timeType:
		return New(&StringType{Format: "date-time"})
	case urlType:
		return New(&StringType{Format: "uri"})
	case extendsFromType:
		return New(&UnionType{
			Variants: []*Schema{
				New(&StringType{}),
				New(&ArrayType{Items: New(&StringType{})}),
			},
		})
	}
	if reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		return New(&StringType{})
	}

	switch typ.Kind() {
	case reflect.Bool:
		return New(&BooleanType{})
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return New(&IntegerType{Kind: typ.Kind()})
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		var zero int64

		return New(&IntegerType{Kind: typ.Kind(), Min: &zero})
	case reflect.Float32, reflect.Float64:
		return New(&FloatType{Kind: typ.Kind()})
	case reflect.String:
		return New(&StringType{})
	case reflect.Slice:
		return New(&ArrayType{Items: b.infer(typ.Elem())})
	case reflect.Array:
		length := typ.Len()

		return New(&ArrayType{Items: b.infer(typ.Elem()), MinLength: &length, MaxLength: &length})
	case reflect.Map:
		if typ.Elem().Kind() == reflect.Struct && typ.Elem().NumField() == 0 {
			return New(&ArrayType{Items: b.infer(typ.Key()), Unique: true})
		}

		return New(&ObjectType{Key: b.infer(typ.Key()), Value: b.infer(typ.Elem())})
	case reflect.Struct:
		return b.structure(typ)
	default:
		return Unknown()
	}
}

func (b *Builder) schematic(typ reflect.Type) (*Schema, bool) {
	if !typ.Implements(schematicType) && !reflect.PointerTo(typ).Implements(schematicType) {
		return nil, false
	}

	value, _ := reflect.New(typ).Interface().(Schematic)
	name := value.SchemaName()
	if b.inferring[typ] {
		return &Schema{Name: name, Type: &ReferenceType{Name: name}}, true
	}
	b.inferring[typ] = true
	defer delete(b.inferring, typ)

	return value.BuildSchema(b.child().Name(name)), true
}

func (b *Builder) structure(typ reflect.Type) *Schema {
	name := typ.Name()
	if b.inferring[typ] {
		return &Schema{Name: name, Type: &ReferenceType{Name: name}}
	}
	b.inferring[typ] = true
	defer delete(b.inferring, typ)

	structure := &StructType{}
	for i := range typ.NumField() {
		structField := typ.Field(i)
		if !structField.IsExported() {
			continue
		}
		key, _, _ := strings.Cut(structField.Tag.Get(format.TagName), ",")
		if key == "-" {
			continue
		}
		if key == "" {
			key = lowerFirst(structField.Name)
		}

		field := &Field{
			Name:       key,
			Comment:    structField.Tag.Get("doc"),
			Schema:     b.infer(structField.Type),
			EnvVar:     structField.Tag.Get("env"),
			Deprecated: structField.Tag.Get("deprecated"),
			Nullable:   structField.Type.Kind() == reflect.Pointer,
			Optional:   true,
		}
		for _, option := range strings.Split(structField.Tag.Get("setting"), ",") {
			switch strings.TrimSpace(option) {
			case "required":
				field.Optional = false
			case "hidden":
				field.Hidden = true
			}
		}
		if value, ok := structField.Tag.Lookup("default"); ok {
			setDefault(field.Schema, value)
		}
		constrain(field.Schema, structField.Tag.Get("validate"))

		structure.Fields = append(structure.Fields, field)
	}

	return &Schema{Name: name, Type: structure}
}

// setDefault sets the default of a scalar schema, or of the non-null variant of a nullable one.
// Values that do not parse are ignored.
func setDefault(schema *Schema, value string) {
	switch typ := schema.Type.(type) {
	case *BooleanType:
		if parsed, err := strconv.ParseBool(value); err == nil {
			typ.Default = &parsed
		}
	case *IntegerType:
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			typ.Default = &parsed
		}
	case *FloatType:
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			typ.Default = &parsed
		}
	case *StringType:
		typ.Default = &value
	case *UnionType:
		for _, variant := range typ.Variants {
			if !variant.IsNull() {
				setDefault(variant, value)

				return
			}
		}
	}
}

// constrain maps the go-playground/validator tags that have a JSON Schema equivalent.
func constrain(schema *Schema, tag string) { //nolint:cyclop
	if union, ok := schema.Type.(*UnionType); ok {
		for _, variant := range union.Variants {
			if !variant.IsNull() {
				constrain(variant, tag)
			}
		}

		return
	}

	for _, rule := range strings.Split(tag, ",") {
		name, param, _ := strings.Cut(strings.TrimSpace(rule), "=")
		switch name {
		case "min", "gte":
			bound(schema, param, func(i *IntegerType, v int64) { i.Min = &v },
				func(f *FloatType, v float64) { f.Min = &v }, func(v int) *int { return &v }, true)
		case "max", "lte":
			bound(schema, param, func(i *IntegerType, v int64) { i.Max = &v },
				func(f *FloatType, v float64) { f.Max = &v }, func(v int) *int { return &v }, false)
		case "gt":
			bound(schema, param, func(i *IntegerType, v int64) { i.MinExclusive = &v },
				func(f *FloatType, v float64) { f.MinExclusive = &v }, nil, true)
		case "lt":
			bound(schema, param, func(i *IntegerType, v int64) { i.MaxExclusive = &v },
				func(f *FloatType, v float64) { f.MaxExclusive = &v }, nil, false)
		case "len":
			bound(schema, param, nil, nil, func(v int) *int { return &v }, true)
			bound(schema, param, nil, nil, func(v int) *int { return &v }, false)
		case "oneof":
			values := strings.Fields(param)
			switch typ := schema.Type.(type) {
			case *StringType:
				typ.Enum = values
			case *IntegerType:
				for _, value := range values {
					if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
						typ.Enum = append(typ.Enum, parsed)
					}
				}
			}
		case "url", "uri", "http_url":
			stringFormat(schema, "uri")
		case "email", "hostname", "ipv4", "ipv6", "uuid":
			stringFormat(schema, name)
		}
	}
}

// bound applies a numeric bound to integers and floats, or a length bound to strings and arrays.
func bound(
	schema *Schema, param string,
	integer func(*IntegerType, int64), float func(*FloatType, float64),
	length func(int) *int, lower bool,
) {
	switch typ := schema.Type.(type) {
	case *IntegerType:
		if parsed, err := strconv.ParseInt(param, 10, 64); err == nil && integer != nil {
			integer(typ, parsed)
		}
	case *FloatType:
		if parsed, err := strconv.ParseFloat(param, 64); err == nil && float != nil {
			float(typ, parsed)
		}
	case *StringType:
		if parsed, err := strconv.Atoi(param); err == nil && length != nil {
			if lower {
				typ.MinLength = length(parsed)
			} else {
				typ.MaxLength = length(parsed)
			}
		}
	case *ArrayType:
		if parsed, err := strconv.Atoi(param); err == nil && length != nil {
			if lower {
				typ.MinLength = length(parsed)
			} else {
				typ.MaxLength = length(parsed)
			}
		}
	}
}

func stringFormat(schema *Schema, format string) {
	if typ, ok := schema.Type.(*StringType); ok {
		typ.Format = format
	}
}

func lowerFirst(name string) string {
	r, size := utf8.DecodeRuneInString(name)

	return string(unicode.ToLower(r)) + name[size:]
}
