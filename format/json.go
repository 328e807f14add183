// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package format

import (
	"encoding/json"
	"errors"
	"strings"
)

func parseJSON(content, location string) (map[string]any, error) {
	var values map[string]any
	err := json.Unmarshal([]byte(content), &values)
	if err == nil {
		if values == nil {
			// The document is `null`.
			values = make(map[string]any)
		}

		return values, nil
	}

	parseErr := &Error{
		Location: location,
		Content:  content,
		Message:  strings.TrimPrefix(err.Error(), "json: "),
		Err:      err,
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &syntaxErr):
		parseErr.Span = &Span{Offset: max(int(syntaxErr.Offset)-1, 0), Length: 1}
	case errors.As(err, &typeErr):
		parseErr.Path = typeErr.Field
		parseErr.Span = &Span{Offset: max(int(typeErr.Offset)-1, 0), Length: 1}
	}

	return nil, parseErr
}
