// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package s3

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// WithAWSConfig provides the AWS Config for the AWS SDK.
//
// By default, it loads the default AWS Config.
func WithAWSConfig(config aws.Config) Option {
	return func(options *options) {
		options.config = config
	}
}

// WithTimeout provides the timeout of downloading an object.
//
// By default, the deadline of the context passed to Fetch applies.
func WithTimeout(timeout time.Duration) Option {
	return func(options *options) {
		options.timeout = timeout
	}
}

type (
	// Option configures the S3 with specific options.
	Option  func(options *options)
	options S3
)
