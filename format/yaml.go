// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package format

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func parseYAML(content, location string) (map[string]any, error) {
	var values map[string]any
	err := yaml.Unmarshal([]byte(content), &values)
	if err == nil {
		if values == nil {
			// The document only has comments.
			return make(map[string]any), nil
		}

		normalized, _ := normalize(values).(map[string]any)

		return normalized, nil
	}

	message := strings.TrimPrefix(err.Error(), "yaml: ")
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		message = typeErr.Errors[0]
	}

	parseErr := &Error{
		Location: location,
		Content:  content,
		Message:  message,
		Err:      err,
	}
	if matches := linePattern.FindStringSubmatch(message); len(matches) > 1 {
		if line, e := strconv.Atoi(matches[1]); e == nil {
			start := offset(content, line, 1)
			end := strings.IndexByte(content[start:], '\n')
			if end < 0 {
				end = len(content) - start
			}
			parseErr.Span = &Span{Offset: start, Length: end}
		}
	}

	return nil, parseErr
}

// normalize converts maps with non-string keys, which YAML allows, into map[string]any.
func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			v[key] = normalize(val)
		}

		return v
	case map[any]any:
		values := make(map[string]any, len(v))
		for key, val := range v {
			values[fmt.Sprint(key)] = normalize(val)
		}

		return values
	case []any:
		for i, val := range v {
			v[i] = normalize(val)
		}

		return v
	default:
		return value
	}
}

var linePattern = regexp.MustCompile(`line (\d+)`) //nolint:gochecknoglobals
