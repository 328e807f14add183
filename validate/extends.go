// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nil-go/strata/internal/locate"
)

// ExtendsString requires a reference to another configuration source:
// a file path or a secure URL with a supported format extension.
func ExtendsString(_ context.Context, value string) error {
	if value == "" {
		return nil
	}

	isFile, isURL := locate.IsFileLike(value), locate.IsURLLike(value)
	if !isFile && !isURL {
		return errors.New("only file paths and URLs can be extended") //nolint:err113
	}
	if !locate.IsSourceFormat(value) {
		return fmt.Errorf("invalid format, try a supported extension: %s", extensions()) //nolint:err113
	}
	if isURL && !locate.IsSecureURL(value) {
		return errors.New("only secure URLs can be extended") //nolint:err113
	}

	return nil
}

// ExtendsList requires every item to pass ExtendsString.
func ExtendsList(ctx context.Context, values []string) error {
	var errs []error
	for i, value := range values {
		if err := ExtendsString(ctx, value); err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

func extensions() string {
	return strings.Join([]string{".json", ".toml", ".yaml", ".yml"}, ", ")
}
