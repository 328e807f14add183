// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Dir is a cache that stores the content as files in a directory.
// Each file is named by the SHA-256 digest of the URL.
//
// To create a new Dir, call [NewDir].
type Dir struct {
	metrics *metrics
	now     func() time.Time

	dir string
	ttl time.Duration
}

// NewDir creates a Dir in the given directory with the given Option(s).
// An entry older than ttl is treated as missing, and a zero ttl never expires.
//
// It panics if the dir is empty.
func NewDir(dir string, ttl time.Duration, opts ...Option) *Dir {
	if dir == "" {
		panic("cannot create cache with empty dir")
	}

	option := apply(opts)

	return &Dir{
		metrics: option.metrics,
		now:     option.now,
		dir:     dir,
		ttl:     ttl,
	}
}

// Read returns the content cached for the URL if it has not expired.
func (d *Dir) Read(url string) ([]byte, bool, error) {
	path := d.path(url)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			d.metrics.miss()

			return nil, false, nil
		}

		return nil, false, fmt.Errorf("stat cache file: %w", err)
	}
	if d.ttl > 0 && d.now().Sub(info.ModTime()) > d.ttl {
		d.metrics.miss()

		return nil, false, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("read cache file: %w", err)
	}
	d.metrics.hit()

	return content, true, nil
}

// Write caches the content for the URL.
// The file is replaced atomically, so concurrent readers never see partial content.
func (d *Dir) Write(url string, content []byte) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil { //nolint:gosec,mnd
		return fmt.Errorf("create cache dir: %w", err)
	}

	file, err := os.CreateTemp(d.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	defer func() {
		_ = os.Remove(file.Name())
	}()

	if _, err := file.Write(content); err != nil {
		_ = file.Close()

		return fmt.Errorf("write cache file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close cache file: %w", err)
	}

	path := d.path(url)
	if err := os.Rename(file.Name(), path); err != nil {
		return fmt.Errorf("rename cache file: %w", err)
	}
	now := d.now()
	if err := os.Chtimes(path, now, now); err != nil {
		return fmt.Errorf("touch cache file: %w", err)
	}
	d.metrics.write()

	return nil
}

func (d *Dir) path(url string) string {
	sum := sha256.Sum256([]byte(url))

	return filepath.Join(d.dir, hex.EncodeToString(sum[:]))
}

func (d *Dir) String() string {
	return "dir:" + d.dir
}
