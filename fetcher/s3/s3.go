// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package s3 fetches configuration documents from AWS [S3].
//
// It requires following permissions to access object from AWS S3:
//   - s3:GetObject
//
// Register it to the loader for `s3://bucket/key` URLs.
// The extension of the key selects the format of the document:
//
//	loader := derive.NewLoader[AppConfig](strata.WithFetcher("s3", s3.New()))
//	err := loader.URL("s3://bucket/config/app.yml")
//
// [S3]: https://aws.amazon.com/s3/
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// ErrNotFound is returned when the object does not exist.
var ErrNotFound = errors.New("object not found")

var errInvalidURL = errors.New("expected s3://bucket/key")

// S3 is a fetcher that downloads objects from AWS S3.
//
// To create a new S3, call [New].
type S3 struct {
	config  aws.Config
	timeout time.Duration

	client *s3.Client
	mutex  sync.Mutex
}

// New creates an S3 with the given Option(s).
func New(opts ...Option) *S3 {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}

	return (*S3)(option)
}

// Fetch downloads the object of the `s3://bucket/key` URL.
func (f *S3) Fetch(ctx context.Context, url string) ([]byte, error) {
	bucket, key, err := parse(url)
	if err != nil {
		return nil, err
	}

	client, err := f.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) && (ae.ErrorCode() == "NoSuchKey" || ae.ErrorCode() == "NotFound") {
			return nil, fmt.Errorf("get object: %w: %w", ErrNotFound, err)
		}

		return nil, fmt.Errorf("get object: %w", err)
	}
	defer func() {
		// Ignore error: it could do nothing on this error.
		_ = resp.Body.Close()
	}()

	bytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}

	return bytes, nil
}

func (f *S3) String() string {
	return "s3"
}

func (f *S3) s3Client(ctx context.Context) (*s3.Client, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.client == nil {
		if reflect.ValueOf(f.config).IsZero() {
			var err error
			if f.config, err = config.LoadDefaultConfig(ctx); err != nil {
				return nil, fmt.Errorf("load default AWS config: %w", err)
			}
		}
		f.client = s3.NewFromConfig(f.config)
	}

	return f.client, nil
}

func parse(url string) (string, string, error) {
	location := strings.TrimPrefix(url, "s3://")
	location, _, _ = strings.Cut(location, "?")
	location, _, _ = strings.Cut(location, "#")
	bucket, key, _ := strings.Cut(location, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 URL %q: %w", url, errInvalidURL)
	}

	return bucket, key, nil
}
