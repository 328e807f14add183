// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

//nolint:ireturn
package gcs

import (
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/option/internaloption"
)

// WithTimeout provides the timeout of downloading an object.
//
// By default, the deadline of the context passed to Fetch applies.
func WithTimeout(timeout time.Duration) Option {
	return &optionFunc{
		fn: func(options *options) {
			options.timeout = timeout
		},
	}
}

type (
	// Option configures the GCS with specific options.
	// It also accepts the client options of Google APIs, e.g. option.WithCredentialsFile.
	Option     = option.ClientOption
	optionFunc struct {
		internaloption.EmbeddableAdapter
		fn func(options *options)
	}
	options GCS
)
