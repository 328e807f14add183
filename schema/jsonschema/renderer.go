// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package jsonschema renders schemas into a JSON Schema (draft-07) document.
//
// The last schema of the generator is the root of the document,
// and the others are rendered under its definitions.
package jsonschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/nil-go/strata/schema"
)

// Renderer renders JSON Schema documents.
//
// To create a new Renderer, call [New].
type Renderer struct {
	metaSchema      string
	definitionsPath string
	indent          string
}

// New creates a Renderer with the given Option(s).
func New(opts ...Option) Renderer {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}
	if option.metaSchema == "" {
		option.metaSchema = "http://json-schema.org/draft-07/schema#"
	}
	if option.definitionsPath == "" {
		option.definitionsPath = "#/definitions/"
	}
	if option.indent == "" {
		option.indent = "  "
	}

	return Renderer(*option)
}

func (r Renderer) Render(schemas []*schema.Schema, references map[string]struct{}) (string, error) {
	if len(schemas) == 0 {
		return "", errors.New("no schema to render") //nolint:err113
	}

	rdr := renderer{Renderer: r, references: references}
	root := rdr.renderWithoutReference(schemas[len(schemas)-1])
	root["$schema"] = r.metaSchema
	if len(schemas) > 1 {
		definitions := make(map[string]any, len(schemas)-1)
		for _, definition := range schemas[:len(schemas)-1] {
			definitions[definition.Name] = rdr.renderWithoutReference(definition)
		}
		root["definitions"] = definitions
	}

	output, err := json.MarshalIndent(root, "", r.indent)
	if err != nil {
		return "", fmt.Errorf("marshal JSON schema: %w", err)
	}

	return string(output), nil
}

type renderer struct {
	Renderer
	references map[string]struct{}
}

func (r renderer) render(s *schema.Schema) map[string]any {
	if _, ok := r.references[s.Name]; ok && s.Name != "" {
		return r.reference(s.Name)
	}

	return r.renderWithoutReference(s)
}

func (r renderer) renderWithoutReference(s *schema.Schema) map[string]any { //nolint:cyclop
	var rendered map[string]any
	switch typ := s.Type.(type) {
	case *schema.NullType:
		rendered = map[string]any{"type": "null"}
	case *schema.ArrayType:
		rendered = r.array(typ)
	case *schema.BooleanType:
		rendered = map[string]any{"type": "boolean"}
	case *schema.EnumType:
		rendered = enum(typ)
	case *schema.FloatType:
		rendered = number("number", typ.Enum, typ.Format, typ.Min, typ.MinExclusive, typ.Max, typ.MaxExclusive, typ.MultipleOf)
	case *schema.IntegerType:
		rendered = number("integer", typ.Enum, typ.Format, typ.Min, typ.MinExclusive, typ.Max, typ.MaxExclusive, typ.MultipleOf)
	case *schema.LiteralType:
		if typ.Value == nil {
			rendered = unknown()
		} else {
			rendered = map[string]any{"const": typ.Value}
		}
	case *schema.ObjectType:
		rendered = r.object(typ)
	case *schema.ReferenceType:
		rendered = r.reference(typ.Name)
	case *schema.StringType:
		rendered = str(typ)
	case *schema.StructType:
		rendered = r.structure(typ)
	case *schema.TupleType:
		items := make([]any, 0, len(typ.Items))
		for _, item := range typ.Items {
			items = append(items, r.render(item))
		}
		rendered = map[string]any{"type": "array", "items": items, "minItems": len(items), "maxItems": len(items)}
	case *schema.UnionType:
		rendered = r.union(typ)
	default:
		rendered = unknown()
	}

	if _, ok := s.Type.(*schema.ReferenceType); !ok {
		if s.Name != "" && (s.IsStruct() || isEnum(s)) {
			rendered["title"] = s.Name
		}
		if s.Description != "" {
			rendered["description"] = cleanComment(s.Description)
		}
	}

	return rendered
}

func (r renderer) reference(name string) map[string]any {
	return map[string]any{"$ref": r.definitionsPath + name}
}

func (r renderer) array(typ *schema.ArrayType) map[string]any {
	rendered := map[string]any{"type": "array"}
	if typ.Contains {
		rendered["contains"] = r.render(typ.Items)
	} else {
		rendered["items"] = r.render(typ.Items)
	}
	if typ.MinLength != nil {
		rendered["minItems"] = *typ.MinLength
	}
	if typ.MaxLength != nil {
		rendered["maxItems"] = *typ.MaxLength
	}
	if typ.Unique {
		rendered["uniqueItems"] = true
	}

	return rendered
}

func (r renderer) object(typ *schema.ObjectType) map[string]any {
	rendered := map[string]any{
		"type":                 "object",
		"additionalProperties": r.render(typ.Value),
		"propertyNames":        r.render(typ.Key),
	}
	if typ.MinLength != nil {
		rendered["minProperties"] = *typ.MinLength
	}
	if typ.MaxLength != nil {
		rendered["maxProperties"] = *typ.MaxLength
	}
	if len(typ.Required) > 0 {
		rendered["required"] = sorted(typ.Required)
	}

	return rendered
}

func (r renderer) structure(typ *schema.StructType) map[string]any {
	properties := make(map[string]any, len(typ.Fields))
	required := slices.Clone(typ.Required)
	for _, field := range typ.Fields {
		if field.Hidden {
			continue
		}
		if !field.Optional && !typ.Partial {
			required = append(required, field.Name)
		}
		properties[field.Name] = r.field(field, typ.Partial)
	}

	rendered := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		rendered["required"] = sorted(required)
	}

	return rendered
}

// field renders a struct field with its metadata. The fields of a partial struct also accept null.
func (r renderer) field(field *schema.Field, partial bool) map[string]any {
	rendered := r.render(field.Schema)
	if _, union := field.Schema.Type.(*schema.UnionType); partial && !union {
		rendered = map[string]any{"anyOf": []any{rendered, map[string]any{"type": "null"}}}
	}

	if field.Comment != "" {
		rendered["description"] = cleanComment(field.Comment)
	}
	if field.Deprecated != "" {
		rendered["deprecated"] = true
	}
	if field.ReadOnly {
		rendered["readOnly"] = true
	}
	if field.WriteOnly {
		rendered["writeOnly"] = true
	}
	if value := field.Schema.Default(); value != nil {
		rendered["default"] = value
	}

	return rendered
}

func (r renderer) union(typ *schema.UnionType) map[string]any {
	variants := make([]any, 0, len(typ.Variants))
	for _, variant := range typ.Variants {
		variants = append(variants, r.render(variant))
	}

	operator := "anyOf"
	if typ.Operator == schema.OneOf {
		operator = "oneOf"
	}

	return map[string]any{operator: variants}
}

func enum(typ *schema.EnumType) map[string]any {
	instance := "string"
	for _, value := range typ.Values {
		switch value.(type) {
		case bool:
			instance = "boolean"
		case string:
			instance = "string"
		default:
			instance = "number"
		}
	}

	return map[string]any{"type": instance, "enum": slices.Clone(typ.Values)}
}

func number[N int64 | float64](instance string, values []N, format string, bounds ...*N) map[string]any {
	rendered := map[string]any{"type": instance}
	if len(values) > 0 {
		rendered["enum"] = slices.Clone(values)
	}
	if format != "" {
		rendered["format"] = format
	}
	for i, key := range []string{"minimum", "exclusiveMinimum", "maximum", "exclusiveMaximum", "multipleOf"} {
		if bounds[i] != nil {
			rendered[key] = *bounds[i]
		}
	}

	return rendered
}

func str(typ *schema.StringType) map[string]any {
	rendered := map[string]any{"type": "string"}
	if len(typ.Enum) > 0 {
		rendered["enum"] = slices.Clone(typ.Enum)
	}
	if typ.Format != "" {
		rendered["format"] = typ.Format
	}
	if typ.MinLength != nil {
		rendered["minLength"] = *typ.MinLength
	}
	if typ.MaxLength != nil {
		rendered["maxLength"] = *typ.MaxLength
	}
	if typ.Pattern != "" {
		rendered["pattern"] = typ.Pattern
	}

	return rendered
}

func unknown() map[string]any {
	return map[string]any{"type": []any{"boolean", "object", "array", "number", "string", "integer"}}
}

func isEnum(s *schema.Schema) bool {
	_, ok := s.Type.(*schema.EnumType)

	return ok
}

func sorted(values []string) []string {
	values = slices.Clone(values)
	slices.Sort(values)

	return slices.Compact(values)
}

func cleanComment(comment string) string {
	return strings.ReplaceAll(strings.TrimSpace(comment), "\n", " ")
}
