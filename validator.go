// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

import (
	"context"
	"strings"
)

// SettingError describes why the value of a single setting is invalid.
type SettingError struct {
	Path    Path
	Message string
}

// NewSettingError creates a SettingError for the setting at the path.
func NewSettingError(path Path, err error) *SettingError {
	return &SettingError{Path: path, Message: err.Error()}
}

func (e *SettingError) Error() string {
	return e.Path.String() + ": " + e.Message
}

// ValidatorError collects every invalid setting found in a configuration.
type ValidatorError struct {
	Errors []*SettingError
}

func (e *ValidatorError) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		messages = append(messages, err.Error())
	}

	return strings.Join(messages, "\n")
}

// FullString renders one indented line per invalid setting.
func (e *ValidatorError) FullString() string {
	builder := strings.Builder{}
	for _, err := range e.Errors {
		builder.WriteString("\n  ")
		builder.WriteString(err.Error())
	}

	return builder.String()
}

// Validate validates every setting of the partial configuration.
// When finalize is true, required settings that are still unset are reported too.
//
// It returns a *ValidatorError with all invalid settings, or nil if there is none.
func Validate[P PartialConfig[P]](ctx context.Context, partial P, finalize bool) error {
	if errs := partial.ValidateWithPath(ctx, Path{}, finalize); len(errs) > 0 {
		return &ValidatorError{Errors: errs}
	}

	return nil
}
