// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package locate_test

import (
	"testing"

	"github.com/nil-go/strata/internal/assert"
	"github.com/nil-go/strata/internal/locate"
)

func TestLocate(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		value     string
		url       bool
		file      bool
		secure    bool
		supported bool
		scheme    string
	}{
		{value: "https://example.com/a.yml", url: true, file: true, secure: true, supported: true, scheme: "https"},
		{value: "http://example.com/a.yml", url: true, file: true, supported: true, scheme: "http"},
		{value: "http://localhost:8080/a.json", url: true, file: true, secure: true, supported: true, scheme: "http"},
		{value: "www.example.com/a.toml", url: true, file: true, supported: true},
		{value: "./base.yml", file: true, supported: true},
		{value: "/etc/app/config.toml", file: true, supported: true},
		{value: `..\shared\config.json`, file: true, supported: true},
		{value: "file://base.yml", file: true, supported: true, scheme: "file"},
		{value: "s3://bucket/a.yml", file: true, supported: true, scheme: "s3"},
		{value: "base", file: false},
		{value: "base.ini", file: true},
	}

	for _, testcase := range testcases {
		t.Run(testcase.value, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testcase.url, locate.IsURLLike(testcase.value))
			assert.Equal(t, testcase.file, locate.IsFileLike(testcase.value))
			assert.Equal(t, testcase.secure, locate.IsSecureURL(testcase.value))
			assert.Equal(t, testcase.supported, locate.IsSourceFormat(testcase.value))
			assert.Equal(t, testcase.scheme, locate.Scheme(testcase.value))
		})
	}

	assert.True(t, locate.HasScheme("S3://bucket/a.yml", []string{"s3", "gs"}))
	assert.True(t, !locate.HasScheme("./a.yml", []string{"s3"}))
}
