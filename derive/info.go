// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package derive

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/nil-go/strata"
	"github.com/nil-go/strata/format"
)

type fieldKind uint8

const (
	leafKind fieldKind = iota
	extendKind
	structKind
	pointerKind
	sliceKind
	mapKind
)

type field struct {
	index int
	key   string
	kind  fieldKind
	// typ is the type of the stored value. It is the element type for pointers.
	typ    reflect.Type
	nested *structInfo

	def       *string
	env       string
	merge     string
	validate  string
	transform string
	required  bool
}

type structInfo struct {
	typ    reflect.Type
	fields []*field
}

//nolint:gochecknoglobals
var (
	infos      = make(map[reflect.Type]*structInfo)
	infosMutex sync.Mutex

	extendsFromType     = reflect.TypeFor[strata.ExtendsFrom]()
	timeType            = reflect.TypeFor[time.Time]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

func infoFor[T any]() *structInfo {
	infosMutex.Lock()
	defer infosMutex.Unlock()

	return analyze(reflect.TypeFor[T]())
}

// analyze must be called with infosMutex held.
// Recursive types share the info that is still being analyzed.
func analyze(typ reflect.Type) *structInfo {
	if info, ok := infos[typ]; ok {
		return info
	}
	if typ.Kind() != reflect.Struct {
		panic(fmt.Sprintf("derive: %s is not a struct", typ))
	}

	info := &structInfo{typ: typ}
	infos[typ] = info
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

		fld := &field{
			index:    i,
			key:      key,
			env:      structField.Tag.Get("env"),
			merge:    structField.Tag.Get("merge"),
			validate: structField.Tag.Get("validate"),
		}
		if value, ok := structField.Tag.Lookup("default"); ok {
			fld.def = &value
		}

		var nested bool
		for _, option := range strings.Split(structField.Tag.Get("setting"), ",") {
			name, value, _ := strings.Cut(strings.TrimSpace(option), "=")
			switch name {
			case "required":
				fld.required = true
			case "extend":
				fld.kind = extendKind
			case "nested":
				nested = true
			case "transform":
				fld.transform = value
			case "hidden", "":
			default:
				panic(fmt.Sprintf("derive: unknown setting option %q on %s.%s", name, typ, structField.Name))
			}
		}

		if fld.kind == extendKind || structField.Type == extendsFromType {
			if structField.Type != extendsFromType {
				panic(fmt.Sprintf("derive: extend setting %s.%s must be strata.ExtendsFrom", typ, structField.Name))
			}
			fld.kind, fld.typ = extendKind, extendsFromType
		} else {
			fld.kind, fld.typ, fld.nested = classify(structField.Type, nested)
		}
		info.fields = append(info.fields, fld)
	}

	return info
}

func classify(typ reflect.Type, nested bool) (fieldKind, reflect.Type, *structInfo) {
	switch {
	case isNested(typ, nested):
		return structKind, typ, analyze(typ)
	case typ.Kind() == reflect.Pointer && isNested(typ.Elem(), nested):
		return pointerKind, typ.Elem(), analyze(typ.Elem())
	case typ.Kind() == reflect.Slice && isNested(typ.Elem(), nested):
		return sliceKind, typ, analyze(typ.Elem())
	case typ.Kind() == reflect.Map && typ.Key().Kind() == reflect.String && isNested(typ.Elem(), nested):
		return mapKind, typ, analyze(typ.Elem())
	case typ.Kind() == reflect.Pointer:
		return leafKind, typ.Elem(), nil
	default:
		return leafKind, typ, nil
	}
}

func isNested(typ reflect.Type, forced bool) bool {
	if typ.Kind() != reflect.Struct || typ == extendsFromType {
		return false
	}
	if forced {
		return true
	}

	return typ != timeType && !reflect.PointerTo(typ).Implements(textUnmarshalerType)
}

func lowerFirst(name string) string {
	r, size := utf8.DecodeRuneInString(name)

	return string(unicode.ToLower(r)) + name[size:]
}

// lookup finds the value of the key, falling back to a case-insensitive match
// as mapstructure does.
func lookup(values map[string]any, key string) (any, bool) {
	if value, ok := values[key]; ok {
		return value, true
	}
	for k, value := range values {
		if strings.EqualFold(k, key) {
			return value, true
		}
	}

	return nil, false
}

// collect keeps the values of the settings present in the raw document,
// taking the typed value from the decoded shadow struct.
func (s *structInfo) collect(raw map[string]any, shadow reflect.Value) map[string]any {
	values := make(map[string]any)
	for _, fld := range s.fields {
		rawValue, ok := lookup(raw, fld.key)
		if !ok || rawValue == nil {
			continue
		}

		value := shadow.Field(fld.index)
		switch fld.kind {
		case leafKind:
			if value.Kind() == reflect.Pointer && fld.typ.Kind() != reflect.Pointer {
				if value.IsNil() {
					continue
				}
				value = value.Elem()
			}
			values[fld.key] = value.Interface()
		case extendKind:
			values[fld.key] = value.Interface()
		case structKind:
			rawMap, _ := rawValue.(map[string]any)
			values[fld.key] = fld.nested.collect(rawMap, value)
		case pointerKind:
			if value.IsNil() {
				continue
			}
			rawMap, _ := rawValue.(map[string]any)
			values[fld.key] = fld.nested.collect(rawMap, value.Elem())
		case sliceKind:
			rawItems, _ := rawValue.([]any)
			items := make([]map[string]any, 0, value.Len())
			for i := range value.Len() {
				var rawItem map[string]any
				if i < len(rawItems) {
					rawItem, _ = rawItems[i].(map[string]any)
				}
				items = append(items, fld.nested.collect(rawItem, value.Index(i)))
			}
			values[fld.key] = items
		case mapKind:
			rawMap, _ := rawValue.(map[string]any)
			items := make(map[string]map[string]any, value.Len())
			iter := value.MapRange()
			for iter.Next() {
				key := iter.Key().String()
				rawItem, _ := rawMap[key].(map[string]any)
				items[key] = fld.nested.collect(rawItem, iter.Value())
			}
			values[fld.key] = items
		}
	}

	return values
}

// exported drops the settings that are not part of the final configuration.
func (s *structInfo) exported(values map[string]any) map[string]any {
	result := make(map[string]any, len(values))
	for _, fld := range s.fields {
		value, ok := values[fld.key]
		if !ok {
			continue
		}

		switch fld.kind {
		case extendKind:
			continue
		case structKind, pointerKind:
			nested, _ := value.(map[string]any)
			value = fld.nested.exported(nested)
		case sliceKind:
			items, _ := value.([]map[string]any)
			exported := make([]map[string]any, 0, len(items))
			for _, item := range items {
				exported = append(exported, fld.nested.exported(item))
			}
			value = exported
		case mapKind:
			items, _ := value.(map[string]map[string]any)
			exported := make(map[string]map[string]any, len(items))
			for key, item := range items {
				exported[key] = fld.nested.exported(item)
			}
			value = exported
		}
		result[fld.key] = value
	}

	return result
}

func (s *structInfo) settings(seen map[reflect.Type]bool) strata.SettingMap {
	seen[s.typ] = true
	defer delete(seen, s.typ)

	settings := make(strata.SettingMap, len(s.fields))
	for _, fld := range s.fields {
		setting := strata.Setting{Env: fld.env, TypeAlias: fld.typ.String()}
		if fld.nested != nil && !seen[fld.nested.typ] {
			setting.Nested = fld.nested.settings(seen)
		}
		settings[fld.key] = setting
	}

	return settings
}
