// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package typescript renders schemas into TypeScript declarations.
//
// Structs are declared as interfaces or type aliases, enums as string unions or native enums,
// and every other named schema as a type alias.
package typescript

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/nil-go/strata/schema"
)

// Renderer renders TypeScript declarations.
//
// To create a new Renderer, call [New].
type Renderer struct {
	enumFormat        EnumFormat
	objectFormat      ObjectFormat
	constEnum         bool
	disableReferences bool
	excludeReferences []string
	externalTypes     map[string][]string
	indent            string
}

// New creates a Renderer with the given Option(s).
func New(opts ...Option) Renderer {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}
	if option.indent == "" {
		option.indent = "\t"
	}

	return Renderer(*option)
}

func (r Renderer) Render(schemas []*schema.Schema, references map[string]struct{}) (string, error) {
	if len(schemas) == 0 {
		return "", errors.New("no schema to render") //nolint:err113
	}

	rdr := &renderer{Renderer: r, references: references}
	outputs := []string{
		"// Automatically generated by strata. DO NOT MODIFY!",
		"/* eslint-disable */",
	}

	if len(r.externalTypes) > 0 {
		imports := make([]string, 0, len(r.externalTypes))
		for _, path := range slices.Sorted(maps.Keys(r.externalTypes)) {
			types := slices.Clone(r.externalTypes[path])
			slices.Sort(types)
			imports = append(imports, fmt.Sprintf("import type { %s } from '%s';", strings.Join(types, ", "), path))
		}
		outputs = append(outputs, strings.Join(imports, "\n"))
	}

	for _, declared := range schemas {
		if slices.Contains(r.excludeReferences, declared.Name) {
			continue
		}

		var output string
		switch typ := declared.Type.(type) {
		case *schema.EnumType:
			output = rdr.exportEnum(declared.Name, typ)
		case *schema.StructType:
			output = rdr.exportObject(declared.Name, typ)
		default:
			output = rdr.exportAlias(declared.Name, rdr.renderWithoutReference(declared))
		}
		outputs = append(outputs, output)
	}

	return strings.Join(outputs, "\n\n"), nil
}

type renderer struct {
	Renderer
	references map[string]struct{}
	depth      int
}

func (r *renderer) isReference(name string) bool {
	if r.disableReferences || name == "" {
		return false
	}
	if _, ok := r.references[name]; ok {
		return true
	}
	for _, types := range r.externalTypes {
		if slices.Contains(types, name) {
			return true
		}
	}

	return false
}

func (r *renderer) currentIndent() string {
	return strings.Repeat(r.indent, r.depth)
}

func (r *renderer) exportAlias(name, value string) string {
	return fmt.Sprintf("export type %s = %s;", name, value)
}

func (r *renderer) exportEnum(name string, typ *schema.EnumType) string {
	value := r.enum(typ)
	if r.isStringUnion(typ) {
		return r.exportAlias(name, value)
	}
	if r.constEnum {
		return fmt.Sprintf("export const enum %s %s", name, value)
	}

	return fmt.Sprintf("export enum %s %s", name, value)
}

func (r *renderer) exportObject(name string, typ *schema.StructType) string {
	value := r.structure(typ)
	if r.objectFormat == Interface {
		return fmt.Sprintf("export interface %s %s", name, value)
	}

	return r.exportAlias(name, value)
}

func (r *renderer) render(s *schema.Schema) string {
	if r.isReference(s.Name) {
		return s.Name
	}

	return r.renderWithoutReference(s)
}

func (r *renderer) renderWithoutReference(s *schema.Schema) string { //nolint:cyclop
	switch typ := s.Type.(type) {
	case *schema.NullType:
		return "null"
	case *schema.ArrayType:
		items := r.render(typ.Items)
		if strings.Contains(items, "|") {
			return "(" + items + ")[]"
		}

		return items + "[]"
	case *schema.BooleanType:
		return "boolean"
	case *schema.EnumType:
		return r.enum(typ)
	case *schema.FloatType:
		if len(typ.Enum) > 0 {
			return joinValues(typ.Enum)
		}

		return "number"
	case *schema.IntegerType:
		if len(typ.Enum) > 0 {
			return joinValues(typ.Enum)
		}

		return "number"
	case *schema.LiteralType:
		if typ.Value == nil {
			return "unknown"
		}

		return literal(typ.Value)
	case *schema.ObjectType:
		return fmt.Sprintf("Record<%s, %s>", r.render(typ.Key), r.render(typ.Value))
	case *schema.ReferenceType:
		return typ.Name
	case *schema.StringType:
		if len(typ.Enum) > 0 {
			values := make([]any, 0, len(typ.Enum))
			for _, value := range typ.Enum {
				values = append(values, value)
			}

			return joinValues(values)
		}

		return "string"
	case *schema.StructType:
		return r.structure(typ)
	case *schema.TupleType:
		items := make([]string, 0, len(typ.Items))
		for _, item := range typ.Items {
			items = append(items, r.render(item))
		}

		return "[" + strings.Join(items, ", ") + "]"
	case *schema.UnionType:
		return r.union(typ.Variants)
	default:
		return "unknown"
	}
}

// isStringUnion reports whether the enum is rendered as a union of its values.
func (r *renderer) isStringUnion(typ *schema.EnumType) bool {
	return r.enumFormat == Union ||
		len(typ.Variants) == 0 ||
		len(typ.Variants) != len(typ.Values) ||
		r.disableReferences
}

func (r *renderer) enum(typ *schema.EnumType) string {
	if r.isStringUnion(typ) {
		var variants []*schema.Schema
		if len(typ.Variants) > 0 {
			for _, variant := range typ.Variants {
				if !variant.Hidden {
					variants = append(variants, variant.Schema)
				}
			}
		} else {
			for _, value := range typ.Values {
				variants = append(variants, schema.New(&schema.LiteralType{Value: value}))
			}
		}

		return r.union(variants)
	}

	r.depth++
	indent := r.currentIndent()
	lines := make([]string, 0, len(typ.Variants))
	for _, variant := range typ.Variants {
		if variant.Hidden {
			continue
		}

		line := indent + variant.Name + ","
		if r.enumFormat == ValuedEnum {
			line = fmt.Sprintf("%s%s = %s,", indent, variant.Name, r.render(variant.Schema))
		}
		var tags []string
		if value := variant.Schema.Default(); value != nil {
			tags = append(tags, "@default "+literal(value))
		}
		lines = append(lines, r.wrapInComment(variant.Comment, tags, line))
	}
	r.depth--

	return fmt.Sprintf("{\n%s\n%s}", strings.Join(lines, "\n"), r.currentIndent())
}

func (r *renderer) structure(typ *schema.StructType) string {
	r.depth++
	indent := r.currentIndent()
	lines := make([]string, 0, len(typ.Fields))
	for _, field := range typ.Fields {
		if field.Hidden {
			continue
		}

		separator := ": "
		if field.Optional || typ.Partial {
			separator = "?: "
		}
		terminator := ";"
		if r.objectFormat == Type {
			terminator = ","
		}
		line := indent + field.Name + separator + r.render(field.Schema) + terminator

		var tags []string
		if value := field.Schema.Default(); value != nil {
			tags = append(tags, "@default "+literal(value))
		}
		if field.Deprecated != "" {
			tags = append(tags, "@deprecated "+field.Deprecated)
		}
		if field.EnvVar != "" {
			tags = append(tags, "@envvar "+field.EnvVar)
		}
		lines = append(lines, r.wrapInComment(field.Comment, tags, line))
	}
	r.depth--

	return fmt.Sprintf("{\n%s\n%s}", strings.Join(lines, "\n"), r.currentIndent())
}

func (r *renderer) union(variants []*schema.Schema) string {
	items := make([]string, 0, len(variants))
	for _, variant := range variants {
		items = append(items, r.render(variant))
	}

	return strings.Join(items, " | ")
}

// wrapInComment prefixes the declaration with a JSDoc comment of the description and tags.
func (r *renderer) wrapInComment(comment string, tags []string, value string) string {
	var lines []string
	if comment = strings.TrimSpace(comment); comment != "" {
		for _, line := range strings.Split(comment, "\n") {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	if len(tags) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, tags...)
	}

	indent := r.currentIndent()
	switch len(lines) {
	case 0:
		return value
	case 1:
		return fmt.Sprintf("%s/** %s */\n%s", indent, lines[0], value)
	}

	out := []string{indent + "/**"}
	for _, line := range lines {
		if line == "" {
			out = append(out, indent+" *")
		} else {
			out = append(out, indent+" * "+line)
		}
	}
	out = append(out, indent+" */")

	return strings.Join(out, "\n") + "\n" + value
}

func literal(value any) string {
	switch value := value.(type) {
	case string:
		return "'" + value + "'"
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}

func joinValues[V any](values []V) string {
	items := make([]string, 0, len(values))
	for _, value := range values {
		items = append(items, literal(value))
	}

	return strings.Join(items, " | ")
}
