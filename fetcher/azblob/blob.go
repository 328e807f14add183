// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package azblob fetches configuration documents from Azure [Blob Storage].
//
// It requires following roles to access blob from Azure Blob Storage:
// - Storage Blob Data Reader
//
// Register it to the loader for `azblob://container/blob` URLs.
// The extension of the blob selects the format of the document:
//
//	fetcher := azblob.New("https://account.blob.core.windows.net")
//	loader := derive.NewLoader[AppConfig](strata.WithFetcher("azblob", fetcher))
//	err := loader.URL("azblob://config/app.json")
//
// [Blob Storage]: https://azure.microsoft.com/en-us/products/storage/blobs
package azblob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// ErrNotFound is returned when the blob or its container does not exist.
var ErrNotFound = errors.New("blob not found")

var errInvalidURL = errors.New("expected azblob://container/blob")

// Blob is a fetcher that downloads blobs from Azure Blob Storage.
//
// To create a new Blob, call [New].
type Blob struct {
	endpoint   string
	credential azcore.TokenCredential
	timeout    time.Duration

	client *azblob.Client
	mutex  sync.Mutex
}

// New creates a Blob for the storage account endpoint with the given Option(s).
func New(endpoint string, opts ...Option) *Blob {
	option := &options{
		endpoint: endpoint,
		// Place holder for the default credential.
		credential: &azidentity.DefaultAzureCredential{},
	}
	for _, opt := range opts {
		opt(option)
	}

	return (*Blob)(option)
}

// Fetch downloads the blob of the `azblob://container/blob` URL.
func (b *Blob) Fetch(ctx context.Context, url string) ([]byte, error) {
	container, name, err := parse(url)
	if err != nil {
		return nil, err
	}

	client, err := b.blobClient()
	if err != nil {
		return nil, err
	}

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	resp, err := client.DownloadStream(ctx, container, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, fmt.Errorf("get blob: %w: %w", ErrNotFound, err)
		}

		return nil, fmt.Errorf("get blob: %w", err)
	}
	defer func() {
		// Ignore error: it could do nothing on this error.
		_ = resp.Body.Close()
	}()

	bytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}

	return bytes, nil
}

func (b *Blob) String() string {
	return "azblob"
}

func (b *Blob) blobClient() (*azblob.Client, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.client != nil {
		return b.client, nil
	}

	if token, ok := b.credential.(*azidentity.DefaultAzureCredential); ok && reflect.ValueOf(*token).IsZero() {
		var err error
		if b.credential, err = azidentity.NewDefaultAzureCredential(nil); err != nil {
			return nil, fmt.Errorf("load default Azure credential: %w", err)
		}
	}

	var (
		client *azblob.Client
		err    error
	)
	if b.credential == nil {
		client, err = azblob.NewClientWithNoCredential(b.endpoint, nil)
	} else {
		client, err = azblob.NewClient(b.endpoint, b.credential, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("create Azure blob client: %w", err)
	}
	b.client = client

	return client, nil
}

func parse(url string) (string, string, error) {
	location := strings.TrimPrefix(url, "azblob://")
	location, _, _ = strings.Cut(location, "?")
	location, _, _ = strings.Cut(location, "#")
	container, name, _ := strings.Cut(location, "/")
	if container == "" || name == "" {
		return "", "", fmt.Errorf("invalid Azure blob URL %q: %w", url, errInvalidURL)
	}

	return container, name, nil
}
