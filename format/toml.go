// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package format

import (
	"errors"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

func parseTOML(content, location string) (map[string]any, error) {
	var values map[string]any
	err := toml.Unmarshal([]byte(content), &values)
	if err == nil {
		return values, nil
	}

	parseErr := &Error{
		Location: location,
		Content:  content,
		Message:  err.Error(),
		Err:      err,
	}

	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, column := decodeErr.Position()
		parseErr.Path = strings.Join(decodeErr.Key(), ".")
		parseErr.Span = &Span{Offset: offset(content, row, column), Length: 1}
	}

	return nil, parseErr
}
