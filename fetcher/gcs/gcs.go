// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package gcs fetches configuration documents from GCP [Cloud Storage].
//
// It requires following roles on the target GCS object:
//   - roles/storage.objectViewer
//
// Register it to the loader for `gs://bucket/object` URLs.
// The extension of the object selects the format of the document:
//
//	loader := derive.NewLoader[AppConfig](strata.WithFetcher("gs", gcs.New()))
//	err := loader.URL("gs://bucket/config/app.toml")
//
// [Cloud Storage]: https://cloud.google.com/storage
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// ErrNotFound is returned when the object does not exist.
var ErrNotFound = errors.New("object not found")

var errInvalidURL = errors.New("expected gs://bucket/object")

// GCS is a fetcher that downloads objects from GCP Cloud Storage.
//
// To create a new GCS, call [New].
type GCS struct {
	timeout time.Duration
	opts    []option.ClientOption

	client *storage.Client
	mutex  sync.Mutex
}

// New creates a GCS with the given Option(s).
func New(opts ...Option) *GCS {
	option := &options{}
	for _, opt := range opts {
		switch o := opt.(type) {
		case *optionFunc:
			o.fn(option)
		default:
			option.opts = append(option.opts, o)
		}
	}

	return (*GCS)(option)
}

// Fetch downloads the object of the `gs://bucket/object` URL.
func (g *GCS) Fetch(ctx context.Context, url string) ([]byte, error) {
	bucket, name, err := parse(url)
	if err != nil {
		return nil, err
	}

	client, err := g.storageClient(ctx)
	if err != nil {
		return nil, err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	reader, err := client.Bucket(bucket).Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, fmt.Errorf("create object reader: %w: %w", ErrNotFound, err)
		}

		return nil, fmt.Errorf("create object reader: %w", err)
	}
	defer func() {
		// Ignore error: it could do nothing on this error.
		_ = reader.Close()
	}()

	bytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}

	return bytes, nil
}

// Close closes the storage client.
func (g *GCS) Close() error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.client == nil {
		return nil
	}
	client := g.client
	g.client = nil
	if err := client.Close(); err != nil {
		return fmt.Errorf("close GCS client: %w", err)
	}

	return nil
}

func (g *GCS) String() string {
	return "gcs"
}

func (g *GCS) storageClient(ctx context.Context) (*storage.Client, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.client == nil {
		client, err := storage.NewClient(ctx, append(g.opts, storage.WithJSONReads())...)
		if err != nil {
			return nil, fmt.Errorf("create GCS client: %w", err)
		}
		g.client = client
	}

	return g.client, nil
}

func parse(url string) (string, string, error) {
	location := strings.TrimPrefix(url, "gs://")
	location, _, _ = strings.Cut(location, "?")
	location, _, _ = strings.Cut(location, "#")
	bucket, name, _ := strings.Cut(location, "/")
	if bucket == "" || name == "" {
		return "", "", fmt.Errorf("invalid GCS URL %q: %w", url, errInvalidURL)
	}

	return bucket, name, nil
}
