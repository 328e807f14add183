// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nil-go/strata/format"
)

var (
	// ErrInvalidCode is returned when inline code has no format.
	ErrInvalidCode error = &codedError{code: "config::code::invalid", message: "invalid code used as a source"}
	// ErrInvalidFile is returned when a file path is empty.
	ErrInvalidFile error = &codedError{code: "config::file::invalid", message: "invalid file path used as a source"}
	// ErrInvalidURL is returned when a URL cannot be parsed or has no host.
	ErrInvalidURL error = &codedError{code: "config::url::invalid", message: "invalid URL used as a source"}
	// ErrExtendsFromNoCode is returned when an extends reference is neither a file path nor a URL.
	ErrExtendsFromNoCode error = &codedError{
		code:    "config::code::extends",
		message: "unable to extend, expected a file path or URL",
	}
	// ErrExtendsFromParentFileOnly is returned when a relative file is extended from inline code or a URL.
	ErrExtendsFromParentFileOnly error = &codedError{
		code:    "config::file::extends",
		message: "extending from a file is only allowed if the parent source is also a file",
	}
)

type codedError struct {
	code    string
	message string
}

func (e *codedError) Error() string {
	return e.message
}

func (e *codedError) Code() string {
	return e.code
}

// MissingFileError is returned when a required file does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return "file path " + e.Path + " does not exist"
}

func (e *MissingFileError) Code() string {
	return "config::file::missing"
}

func (e *MissingFileError) Help() string {
	return "Is the path absolute?"
}

// HTTPSOnlyError is returned when a URL is not secure.
type HTTPSOnlyError struct {
	URL string
}

func (e *HTTPSOnlyError) Error() string {
	return "only secure URLs are allowed, received " + e.URL
}

func (e *HTTPSOnlyError) Code() string {
	return "config::url::https_only"
}

// ReadFileError is returned when a file exists but cannot be read.
type ReadFileError struct {
	Path string
	Err  error
}

func (e *ReadFileError) Error() string {
	return fmt.Sprintf("read source file %s: %v", e.Path, e.Err)
}

func (e *ReadFileError) Unwrap() error {
	return e.Err
}

func (e *ReadFileError) Code() string {
	return "config::fs"
}

// FetchError is returned when the content of a URL cannot be downloaded.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("download source from %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Code() string {
	return "config::http"
}

// ExtendsCycleError is returned when a source extends itself, directly or through others.
// The chain starts and ends with the same source.
type ExtendsCycleError struct {
	Chain []string
}

func (e *ExtendsCycleError) Error() string {
	return "extends cycle detected: " + strings.Join(e.Chain, " -> ")
}

func (e *ExtendsCycleError) Code() string {
	return "config::extends::cycle"
}

// ParseError is returned when the content of a source cannot be parsed into a partial configuration.
type ParseError struct {
	Location string
	Help     string
	Err      *format.Error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return "parse " + e.Location
	}

	return "parse " + e.Location + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	if e.Err == nil {
		return nil
	}

	return e.Err
}

func (e *ParseError) Code() string {
	return "config::parse::failed"
}

// ValidationError is returned when a partial configuration has invalid settings.
type ValidationError struct {
	Location string
	Help     string
	Err      *ValidatorError
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return "validate " + e.Location
	}

	return "validate " + e.Location + ":" + e.Err.FullString()
}

func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return nil
	}

	return e.Err
}

func (e *ValidationError) Code() string {
	return "config::validate::failed"
}

// EnvVarError is returned when an environment variable cannot be parsed.
type EnvVarError struct {
	Key string
	Err error
}

func (e *EnvVarError) Error() string {
	return fmt.Sprintf("invalid environment variable %s: %v", e.Key, e.Err)
}

func (e *EnvVarError) Unwrap() error {
	return e.Err
}

func (e *EnvVarError) Code() string {
	return "config::env::invalid"
}

// DefaultError is returned when a default value cannot be parsed.
type DefaultError struct {
	Err error
}

func (e *DefaultError) Error() string {
	return fmt.Sprintf("invalid default value: %v", e.Err)
}

func (e *DefaultError) Unwrap() error {
	return e.Err
}

func (e *DefaultError) Code() string {
	return "config::default::invalid"
}

// HandlerError is returned by default, merge, validate and transform functions to signal a failure.
type HandlerError struct {
	Message string
}

// Errorf creates a HandlerError with a formatted message.
func Errorf(format string, args ...any) *HandlerError {
	return &HandlerError{Message: fmt.Sprintf(format, args...)}
}

func (e *HandlerError) Error() string {
	return e.Message
}

// Code returns the first diagnostic code found in the error tree, e.g. `config::parse::failed`.
func Code(err error) string {
	if err == nil {
		return ""
	}
	if coded, ok := err.(interface{ Code() string }); ok && coded.Code() != "" {
		return coded.Code()
	}

	switch wrapped := err.(type) {
	case interface{ Unwrap() error }:
		return Code(wrapped.Unwrap())
	case interface{ Unwrap() []error }:
		for _, e := range wrapped.Unwrap() {
			if code := Code(e); code != "" {
				return code
			}
		}
	}

	return ""
}

// Help returns the help text attached to the error chain, if any.
func Help(err error) string {
	for err != nil {
		switch e := err.(type) {
		case *ParseError:
			if e.Help != "" {
				return e.Help
			}
		case *ValidationError:
			if e.Help != "" {
				return e.Help
			}
		case interface{ Help() string }:
			return e.Help()
		}
		err = errors.Unwrap(err)
	}

	return ""
}

// FullString flattens the error with its help text into plain text for logs and tests.
func FullString(err error) string {
	if err == nil {
		return ""
	}

	message := strings.TrimSpace(err.Error())
	if help := Help(err); help != "" {
		message += "\nhelp: " + help
	}

	return message
}
