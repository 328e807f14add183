// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package format_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nil-go/strata/format"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		value       string
		expected    format.Format
		err         string
	}{
		{description: "json", value: "config.json", expected: format.JSON},
		{description: "toml", value: "/etc/app/config.toml", expected: format.TOML},
		{description: "yaml", value: "./config.yaml", expected: format.YAML},
		{description: "yml", value: "config.YML", expected: format.YAML},
		{description: "windows path", value: `C:\app\config.toml`, expected: format.TOML},
		{description: "url", value: "https://example.com/config.yml?ref=main", expected: format.YAML},
		{description: "object url", value: "s3://bucket/dir/config.json", expected: format.JSON},
		{
			description: "no extension",
			value:       "config",
			err:         "unsupported format for config, expected JSON, TOML, YAML",
		},
		{
			description: "unknown extension",
			value:       "https://example.com/config.ini",
			err:         "unsupported format for https://example.com/config.ini, expected JSON, TOML, YAML",
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			actual, err := format.Detect(testcase.value)
			if testcase.err != "" {
				require.EqualError(t, err, testcase.err)
				var unsupported *format.UnsupportedError
				require.ErrorAs(t, err, &unsupported)
				assert.Equal(t, "config::format::unsupported", unsupported.Code())

				return
			}
			require.NoError(t, err)
			assert.Equal(t, testcase.expected, actual)
		})
	}
}

func TestFormat_Parse(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		format      format.Format
		content     string
		expected    map[string]any
	}{
		{
			description: "json",
			format:      format.JSON,
			content:     `{"string": "abc", "number": 1, "list": [1, 2], "nested": {"bool": true}}`,
			expected: map[string]any{
				"string": "abc",
				"number": float64(1),
				"list":   []any{float64(1), float64(2)},
				"nested": map[string]any{"bool": true},
			},
		},
		{
			description: "json (empty)",
			format:      format.JSON,
			content:     "",
			expected:    map[string]any{},
		},
		{
			description: "json (null)",
			format:      format.JSON,
			content:     "null",
			expected:    map[string]any{},
		},
		{
			description: "json (bom)",
			format:      format.JSON,
			content:     "\ufeff{\"a\": \"b\"}",
			expected:    map[string]any{"a": "b"},
		},
		{
			description: "toml",
			format:      format.TOML,
			content:     "string = \"abc\"\nlist = [1, 2]\n\n[nested]\nbool = true\n",
			expected: map[string]any{
				"string": "abc",
				"list":   []any{int64(1), int64(2)},
				"nested": map[string]any{"bool": true},
			},
		},
		{
			description: "toml (whitespace)",
			format:      format.TOML,
			content:     "  \n\t",
			expected:    map[string]any{},
		},
		{
			description: "yaml",
			format:      format.YAML,
			content:     "string: abc\nlist:\n  - 1\n  - 2\nnested:\n  bool: true\n",
			expected: map[string]any{
				"string": "abc",
				"list":   []any{1, 2},
				"nested": map[string]any{"bool": true},
			},
		},
		{
			description: "yaml (merge key)",
			format:      format.YAML,
			content:     "base: &base\n  a: 1\nderived:\n  <<: *base\n  b: 2\n",
			expected: map[string]any{
				"base":    map[string]any{"a": 1},
				"derived": map[string]any{"a": 1, "b": 2},
			},
		},
		{
			description: "yaml (non-string keys)",
			format:      format.YAML,
			content:     "ports:\n  80: http\n  443: https\n",
			expected: map[string]any{
				"ports": map[string]any{"80": "http", "443": "https"},
			},
		},
		{
			description: "yaml (comments only)",
			format:      format.YAML,
			content:     "# nothing here\n",
			expected:    map[string]any{},
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			actual, err := testcase.format.Parse(testcase.content, "config")
			require.NoError(t, err)
			assert.Equal(t, testcase.expected, actual)
		})
	}
}

func TestFormat_Parse_error(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		format      format.Format
		content     string
		message     string
		line        int
	}{
		{
			description: "json syntax",
			format:      format.JSON,
			content:     "{\n\"a\": }",
			message:     "invalid character '}' looking for beginning of value",
			line:        2,
		},
		{
			description: "json not an object",
			format:      format.JSON,
			content:     "[1]",
			message:     "cannot unmarshal array into Go value of type map[string]interface {}",
			line:        1,
		},
		{
			description: "toml syntax",
			format:      format.TOML,
			content:     "a = 1\nb = \n",
			line:        2,
		},
		{
			description: "yaml syntax",
			format:      format.YAML,
			content:     "a: 1\nb: c: d\n",
			message:     "line 2: mapping values are not allowed in this context",
			line:        2,
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			_, err := testcase.format.Parse(testcase.content, "config")
			var parseErr *format.Error
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, "config", parseErr.Location)
			assert.Equal(t, testcase.content, parseErr.Content)
			if testcase.message != "" {
				assert.Equal(t, testcase.message, parseErr.Message)
			}
			require.NotNil(t, parseErr.Span)
			assert.Equal(t, testcase.line, parseErr.Line())
			assert.Equal(t, "config::parse::failed", parseErr.Code())
		})
	}
}

func TestError(t *testing.T) {
	t.Parallel()

	err := &format.Error{Path: "list[0].name", Message: "expected a string", Err: errors.ErrUnsupported}
	assert.EqualError(t, err, "list[0].name: expected a string")
	assert.ErrorIs(t, err, errors.ErrUnsupported)
	assert.Equal(t, 0, err.Line())

	err = &format.Error{Message: "unexpected end of input"}
	assert.EqualError(t, err, "unexpected end of input")
}

func TestFormat_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "YAML", format.YAML.String())
	assert.Equal(t, []string{".yaml", ".yml"}, format.YAML.Extensions())
	assert.Equal(t, []format.Format{format.JSON, format.TOML, format.YAML}, format.Formats())
}

type server struct {
	Host  string           `config:"host"`
	Inner *inner           `config:"inner"`
	Items []inner          `config:"items"`
	Named map[string]inner `config:"named"`
}

type inner struct {
	Tags []string `config:"tags"`
}

func TestDecode(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description  string
		content      string
		allowUnknown bool
		expected     server
		path         string
		line         int
	}{
		{
			description: "known keys",
			content:     "host: example.com\ninner: {tags: [a]}",
			expected:    server{Host: "example.com", Inner: &inner{Tags: []string{"a"}}},
		},
		{
			description: "unknown key",
			content:     "host: example.com\ninnr: {tags: [b]}",
			path:        "innr",
			line:        2,
		},
		{
			description: "unknown nested key",
			content:     "inner:\n  tag: [b]",
			path:        "inner.tag",
			line:        2,
		},
		{
			description: "unknown key in list item",
			content:     "items:\n  - tagz: [c]",
			path:        "items[0].tagz",
			line:        2,
		},
		{
			description: "unknown key in map value",
			content:     "named:\n  first:\n    tagz: [c]",
			path:        "named.first.tagz",
			line:        3,
		},
		{
			description:  "unknown key allowed",
			content:      "host: example.com\ninnr: {tags: [b]}",
			allowUnknown: true,
			expected:     server{Host: "example.com"},
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			values, err := format.YAML.Parse(testcase.content, "config.yml")
			require.NoError(t, err)

			var actual server
			decode := format.Decode
			if testcase.allowUnknown {
				decode = format.DecodeAllowUnknown
			}
			err = decode(values, &actual, "config.yml", testcase.content)
			if testcase.path != "" {
				require.ErrorIs(t, err, format.ErrUnknownSetting)
				var decodeErr *format.Error
				require.ErrorAs(t, err, &decodeErr)
				assert.Equal(t, testcase.path, decodeErr.Path)
				assert.Equal(t, testcase.line, decodeErr.Line())
				assert.Equal(t, testcase.path+": unknown setting", decodeErr.Error())

				return
			}
			require.NoError(t, err)
			assert.Equal(t, testcase.expected, actual)
		})
	}
}
