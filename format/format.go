// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package format detects and parses the serialization formats of configuration sources.
//
// Every format parses a document into a nested map[string]any.
// Empty documents parse into an empty map, and a leading byte order mark is ignored.
package format

import (
	"net/url"
	"path"
	"strings"
)

// Format is a serialization format of configuration content.
type Format string

const (
	JSON Format = "json"
	TOML Format = "toml"
	YAML Format = "yaml"
)

// Formats returns all supported formats in the order they are detected.
func Formats() []Format {
	return []Format{JSON, TOML, YAML}
}

// Detect infers the format from the file extension of the given path or URL.
// The query and fragment of a URL are ignored.
func Detect(value string) (Format, error) {
	name := value
	if u, err := url.Parse(value); err == nil && u.Scheme != "" && u.Path != "" {
		name = u.Path
	}

	switch strings.ToLower(path.Ext(strings.ReplaceAll(name, `\`, "/"))) {
	case ".json":
		return JSON, nil
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", &UnsupportedError{Value: value, Available: available()}
	}
}

// Extensions returns the file extensions recognized for the format.
func (f Format) Extensions() []string {
	switch f {
	case JSON:
		return []string{".json"}
	case TOML:
		return []string{".toml"}
	case YAML:
		return []string{".yaml", ".yml"}
	default:
		return nil
	}
}

// Parse parses the content into a nested map.
// The location names the content in error messages.
func (f Format) Parse(content, location string) (map[string]any, error) {
	content = strings.TrimPrefix(content, "\ufeff")

	if strings.TrimSpace(content) == "" {
		return make(map[string]any), nil
	}

	switch f {
	case JSON:
		return parseJSON(content, location)
	case TOML:
		return parseTOML(content, location)
	case YAML:
		return parseYAML(content, location)
	default:
		return nil, &UnsupportedError{Value: string(f), Available: available()}
	}
}

func (f Format) String() string {
	return strings.ToUpper(string(f))
}

func available() string {
	names := make([]string, 0, len(Formats()))
	for _, format := range Formats() {
		names = append(names, format.String())
	}

	return strings.Join(names, ", ")
}
