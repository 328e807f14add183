// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

import (
	"slices"
	"strconv"
	"strings"
)

// Path locates a setting within a configuration, e.g. `list[0].name`.
//
// A Path is immutable. The methods that join segments return a new Path.
type Path struct {
	segments []segment
}

type segmentKind uint8

const (
	keySegment segmentKind = iota
	indexSegment
	variantSegment
	unknownSegment
)

type segment struct {
	kind  segmentKind
	key   string
	index int
}

// Key returns the path joined with a struct field or map key.
func (p Path) Key(key string) Path {
	return p.join(segment{kind: keySegment, key: key})
}

// Index returns the path joined with a list index.
func (p Path) Index(index int) Path {
	return p.join(segment{kind: indexSegment, index: index})
}

// Variant returns the path joined with an enum variant.
func (p Path) Variant(variant string) Path {
	return p.join(segment{kind: variantSegment, key: variant})
}

// Unknown returns the path joined with a segment that cannot be named.
func (p Path) Unknown() Path {
	return p.join(segment{kind: unknownSegment})
}

// Join returns the path joined with all segments of the other path.
func (p Path) Join(other Path) Path {
	return Path{segments: slices.Concat(p.segments, other.segments)}
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

func (p Path) join(seg segment) Path {
	return Path{segments: append(slices.Clip(p.segments), seg)}
}

// String renders the path, or `.` for the root.
func (p Path) String() string {
	if len(p.segments) == 0 {
		return "."
	}

	builder := strings.Builder{}
	separator := ""
	for _, seg := range p.segments {
		switch seg.kind {
		case indexSegment:
			builder.WriteString("[")
			builder.WriteString(strconv.Itoa(seg.index))
			builder.WriteString("]")
		case keySegment, variantSegment:
			builder.WriteString(separator)
			builder.WriteString(seg.key)
		case unknownSegment:
			builder.WriteString(separator)
			builder.WriteString("?")
		}
		separator = "."
	}

	return builder.String()
}

// ParsePath parses a rendered path such as `list[0].name` back into segments.
// Numeric bracket segments become indexes, and other bracket segments become keys.
func ParsePath(value string) Path {
	var path Path
	if value == "." || value == "" {
		return path
	}

	for _, part := range strings.Split(value, ".") {
		name, rest, _ := strings.Cut(part, "[")
		switch name {
		case "":
		case "?":
			path = path.Unknown()
		default:
			path = path.Key(name)
		}
		for rest != "" {
			var item string
			item, rest, _ = strings.Cut(rest, "]")
			rest = strings.TrimPrefix(rest, "[")
			if index, err := strconv.Atoi(item); err == nil {
				path = path.Index(index)
			} else {
				path = path.Key(item)
			}
		}
	}

	return path
}
