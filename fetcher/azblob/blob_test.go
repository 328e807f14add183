// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package azblob_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nil-go/strata/fetcher/azblob"
	"github.com/nil-go/strata/fetcher/azblob/internal/assert"
)

func TestBlob_Fetch(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		url         string
		opts        []azblob.Option
		handler     func(http.ResponseWriter, *http.Request)
		expected    string
		err         string
		errIs       error
	}{
		{
			description: "blob",
			url:         "azblob://container/config/app.json",
			opts:        []azblob.Option{azblob.WithCredential(nil), azblob.WithTimeout(time.Second)},
			handler: func(writer http.ResponseWriter, request *http.Request) {
				if request.URL.Path != "/container/config/app.json" {
					http.Error(writer, request.URL.Path, http.StatusBadRequest)

					return
				}
				writer.Header().Set("ETag", "k42")
				_, _ = writer.Write([]byte(`{"port": 8080}`))
			},
			expected: `{"port": 8080}`,
		},
		{
			description: "blob not found",
			url:         "azblob://container/app.json",
			opts:        []azblob.Option{azblob.WithCredential(nil)},
			handler: func(writer http.ResponseWriter, _ *http.Request) {
				writer.Header().Set("x-ms-error-code", "BlobNotFound")
				http.Error(writer, "blob not found", http.StatusNotFound)
			},
			errIs: azblob.ErrNotFound,
		},
		{
			description: "download blob error",
			url:         "azblob://container/app.json",
			opts:        []azblob.Option{azblob.WithCredential(nil)},
			handler: func(writer http.ResponseWriter, _ *http.Request) {
				http.Error(writer, "download blob error", http.StatusInternalServerError)
			},
			err: "get blob: ",
		},
		{
			description: "default credential",
			url:         "azblob://container/app.json",
			handler:     func(http.ResponseWriter, *http.Request) {},
			err:         "get blob: authenticated requests are not permitted for non TLS protected (https) endpoints",
		},
		{
			description: "missing blob",
			url:         "azblob://container",
			handler:     func(http.ResponseWriter, *http.Request) {},
			err:         `invalid Azure blob URL "azblob://container": expected azblob://container/blob`,
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(testcase.handler))
			defer server.Close()

			fetcher := azblob.New(server.URL, testcase.opts...)
			content, err := fetcher.Fetch(context.Background(), testcase.url)
			switch {
			case testcase.errIs != nil:
				assert.ErrorIs(t, err, testcase.errIs)
			case testcase.err != "":
				assert.ErrorContains(t, err, testcase.err)
			default:
				assert.NoError(t, err)
				assert.Equal(t, testcase.expected, string(content))
			}
		})
	}
}

func TestBlob_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "azblob", azblob.New("").String())
}
