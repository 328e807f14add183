// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package format

import "strings"

// Error describes content that could not be parsed or decoded.
type Error struct {
	// Location names the content, e.g. a file path.
	Location string
	// Content is the raw content that failed.
	Content string
	// Path is the setting path of the first failing field, e.g. `list[0].name`.
	// It is empty if the failure is not tied to a field.
	Path string
	// Span locates the failure in Content if known.
	Span *Span
	// Message is the underlying parser message.
	Message string

	Err error
}

// Span is a byte range within the content.
type Span struct {
	Offset int
	Length int
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Message
	}

	return e.Path + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the diagnostic code of the error.
func (e *Error) Code() string {
	return "config::parse::failed"
}

// Line returns the 1-based line of the span, or 0 if there is no span.
func (e *Error) Line() int {
	if e.Span == nil {
		return 0
	}

	return strings.Count(e.Content[:min(e.Span.Offset, len(e.Content))], "\n") + 1
}

// UnsupportedError is returned when no format matches a path or URL.
type UnsupportedError struct {
	Value     string
	Available string
}

func (e *UnsupportedError) Error() string {
	return "unsupported format for " + e.Value + ", expected " + e.Available
}

func (e *UnsupportedError) Code() string {
	return "config::format::unsupported"
}

// offset converts a 1-based row and column into a byte offset.
func offset(content string, row, column int) int {
	if row <= 0 {
		return 0
	}

	off := 0
	for line := 1; line < row; line++ {
		index := strings.IndexByte(content[off:], '\n')
		if index < 0 {
			return len(content)
		}
		off += index + 1
	}

	return min(off+max(column-1, 0), len(content))
}
