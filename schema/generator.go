// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package schema

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Renderer renders the collected schemas into a document.
type Renderer interface {
	// Render renders the named schemas in order. The last one is the root schema.
	// A schema whose name is in references is rendered by reference where it is used.
	Render(schemas []*Schema, references map[string]struct{}) (string, error)
}

// Generator collects named schemas and renders them with a Renderer.
//
// To create a new Generator, call [NewGenerator].
type Generator struct {
	schemas    []*Schema
	indexes    map[string]int
	references map[string]struct{}
}

// NewGenerator creates an empty Generator.
func NewGenerator() *Generator {
	return &Generator{
		indexes:    make(map[string]int),
		references: make(map[string]struct{}),
	}
}

// Add adds the schema of T to the generator. See [For].
func Add[T any](generator *Generator) {
	generator.AddSchema(For[T]())
}

// AddSchema adds the schema and the named schemas nested in it.
// Nested schemas are added first, so the last added schema is the root.
//
// Unnamed schemas are only rendered inline. A schema added again under the same name
// replaces the previous one in its original position.
func (g *Generator) AddSchema(schema *Schema) {
	switch typ := schema.Type.(type) {
	case *ArrayType:
		g.AddSchema(typ.Items)
	case *EnumType:
		for _, variant := range typ.Variants {
			g.AddSchema(variant.Schema)
		}
	case *ObjectType:
		g.AddSchema(typ.Key)
		g.AddSchema(typ.Value)
	case *StructType:
		sorted := *typ
		sorted.Fields = slices.Clone(typ.Fields)
		slices.SortStableFunc(sorted.Fields, func(a, b *Field) int { return strings.Compare(a.Name, b.Name) })
		copied := *schema
		copied.Type = &sorted
		schema = &copied

		for _, field := range sorted.Fields {
			g.AddSchema(field.Schema)
		}
	case *TupleType:
		for _, item := range typ.Items {
			g.AddSchema(item)
		}
	case *UnionType:
		for _, variant := range typ.Variants {
			g.AddSchema(variant)
		}
	}

	if schema.Name == "" {
		return
	}
	// A recursive type refers to itself, and the reference must not replace the definition.
	if _, ok := schema.Type.(*ReferenceType); ok {
		return
	}
	g.references[schema.Name] = struct{}{}
	if index, ok := g.indexes[schema.Name]; ok {
		g.schemas[index] = schema

		return
	}
	g.indexes[schema.Name] = len(g.schemas)
	g.schemas = append(g.schemas, schema)
}

// Generate renders the collected schemas and writes the output to w.
func (g *Generator) Generate(w io.Writer, renderer Renderer) error {
	if len(g.schemas) == 0 {
		return errors.New("no named schema to render") //nolint:err113
	}

	output, err := renderer.Render(slices.Clone(g.schemas), g.references)
	if err != nil {
		return fmt.Errorf("render schemas: %w", err)
	}
	if _, err := io.WriteString(w, output+"\n"); err != nil {
		return fmt.Errorf("write schemas: %w", err)
	}

	return nil
}
