// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/nil-go/strata/format"
	"github.com/nil-go/strata/internal/locate"
)

// SourceKind is the kind of origin of a Source.
type SourceKind uint8

const (
	// CodeKind is inline configuration content.
	CodeKind SourceKind = iota + 1
	// FileKind is a file on the file system.
	FileKind
	// URLKind is a remote document.
	URLKind
)

func (k SourceKind) String() string {
	switch k {
	case CodeKind:
		return "code"
	case FileKind:
		return "file"
	case URLKind:
		return "url"
	default:
		return "unknown"
	}
}

// Source is an origin of configuration content: inline code, a file, or a URL.
//
// A Source is immutable and comparable. Two sources are the same if they have the same payload.
type Source struct {
	kind     SourceKind
	code     string
	path     string
	url      string
	required bool
	format   format.Format
}

// CodeSource creates a Source from inline content in the given format.
func CodeSource(code string, f format.Format) (Source, error) {
	if f == "" {
		return Source{}, ErrInvalidCode
	}

	return Source{kind: CodeKind, code: code, format: f}, nil
}

// FileSource creates a Source from a file. The format is detected from the extension.
// A missing file is an error when loading only if it is required.
func FileSource(path string, required bool) (Source, error) {
	path = strings.TrimPrefix(path, "file://")
	if path == "" {
		return Source{}, ErrInvalidFile
	}

	f, err := format.Detect(path)
	if err != nil {
		return Source{}, err
	}

	return Source{kind: FileKind, path: path, required: required, format: f}, nil
}

// URLSource creates a Source from a URL. The format is detected from the URL path.
// A URL starting with `www` is treated as https.
func URLSource(value string) (Source, error) {
	if strings.HasPrefix(value, "www") {
		value = "https://" + value
	}

	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Source{}, ErrInvalidURL
	}

	f, err := format.Detect(value)
	if err != nil {
		return Source{}, err
	}

	return Source{kind: URLKind, url: value, format: f}, nil
}

// NewSource resolves a reference, usually from an extends setting, into a Source.
//
// A URL-like reference is always a URL. A file-like reference is a required file,
// which is relative to the directory of the parent if the parent is a file.
// A relative file cannot be resolved against inline code or a URL.
func NewSource(value string, parent *Source) (Source, error) {
	return newSource(value, parent, nil)
}

// newSource resolves the reference, treating the given schemes as URLs too.
func newSource(value string, parent *Source, schemes []string) (Source, error) {
	if locate.IsURLLike(value) || locate.HasScheme(value, schemes) {
		return URLSource(value)
	}

	if !locate.IsFileLike(value) {
		return Source{}, ErrExtendsFromNoCode
	}

	value = strings.TrimPrefix(value, "file://")
	if parent == nil || isRooted(value) {
		return FileSource(value, true)
	}

	switch parent.kind {
	case FileKind:
		return FileSource(filepath.Join(filepath.Dir(parent.path), value), true)
	default:
		return Source{}, ErrExtendsFromParentFileOnly
	}
}

// same reports whether both sources read the same content,
// regardless of how the path is spelled or whether it is required.
func (s Source) same(other Source) bool {
	switch {
	case s.kind != other.kind:
		return false
	case s.kind == FileKind:
		return filepath.Clean(s.path) == filepath.Clean(other.path)
	case s.kind == URLKind:
		return s.url == other.url
	default:
		return s.code == other.code && s.format == other.format
	}
}

func isRooted(value string) bool {
	return filepath.IsAbs(value) || strings.HasPrefix(value, "/") || strings.HasPrefix(value, `\`)
}

// Kind returns the kind of the source.
func (s Source) Kind() SourceKind {
	return s.kind
}

// Format returns the format of the content.
func (s Source) Format() format.Format {
	return s.format
}

// Code returns the inline content of a code source.
func (s Source) Code() string {
	return s.code
}

// Path returns the path of a file source.
func (s Source) Path() string {
	return s.path
}

// URL returns the URL of a URL source.
func (s Source) URL() string {
	return s.url
}

// Required reports whether a file source must exist.
func (s Source) Required() bool {
	return s.required
}

// FileExt returns the extension of the file or URL path, including the dot.
func (s Source) FileExt() string {
	return path.Ext(s.FileName())
}

// FileName returns the last element of the file or URL path.
func (s Source) FileName() string {
	switch s.kind {
	case FileKind:
		return filepath.Base(s.path)
	case URLKind:
		if u, err := url.Parse(s.url); err == nil {
			return path.Base(u.Path)
		}
	}

	return ""
}

// String returns `<code>` for inline code, the path for a file, and the URL for a URL.
func (s Source) String() string {
	switch s.kind {
	case CodeKind:
		return "<code>"
	case FileKind:
		return s.path
	case URLKind:
		return s.url
	default:
		return ""
	}
}
