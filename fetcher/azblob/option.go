// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package azblob

import (
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// WithCredential provides the azcore.TokenCredential for Azure authentication.
// A nil credential accesses public blobs anonymously.
//
// By default, it uses azidentity.DefaultAzureCredential.
func WithCredential(credential azcore.TokenCredential) Option {
	return func(options *options) {
		options.credential = credential
	}
}

// WithTimeout provides the timeout of downloading a blob.
//
// By default, the deadline of the context passed to Fetch applies.
func WithTimeout(timeout time.Duration) Option {
	return func(options *options) {
		options.timeout = timeout
	}
}

type (
	// Option configures the Blob with specific options.
	Option  func(options *options)
	options Blob
)
