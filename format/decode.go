// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package format

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// TagName is the struct tag that names the key of a field in a document.
const TagName = "config"

// ErrUnknownSetting is wrapped by the *Error returned for a key that matches no field.
var ErrUnknownSetting = errors.New("unknown setting")

// Decode decodes the parsed values into the value pointed to by target.
//
// Strings are converted to durations, comma separated slices and encoding.TextUnmarshaler,
// besides the conversions of the given hooks which run first.
// On failure, it returns an *Error locating the first invalid field in content.
// A key that matches no field of target is a failure wrapping ErrUnknownSetting.
func Decode(values map[string]any, target any, location, content string, hooks ...mapstructure.DecodeHookFunc) error {
	return decode(values, target, location, content, false, hooks)
}

// DecodeAllowUnknown decodes like Decode, but ignores keys that match no field.
func DecodeAllowUnknown(
	values map[string]any, target any, location, content string, hooks ...mapstructure.DecodeHookFunc,
) error {
	return decode(values, target, location, content, true, hooks)
}

func decode(
	values map[string]any, target any, location, content string, allowUnknown bool, hooks []mapstructure.DecodeHookFunc,
) error {
	var metadata mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(
		&mapstructure.DecoderConfig{
			Result:           target,
			Metadata:         &metadata,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.ComposeDecodeHookFunc(append(hooks, defaultDecodeHook)...),
			TagName:          TagName,
		},
	)
	if err != nil {
		return fmt.Errorf("new decoder: %w", err)
	}

	if err := decoder.Decode(values); err != nil {
		path, message := failure(err)

		return newError(location, content, path, message, err)
	}

	if !allowUnknown && len(metadata.Unused) > 0 {
		unused := slices.Clone(metadata.Unused)
		slices.Sort(unused)

		return newError(location, content, normalizePath(unused[0]), ErrUnknownSetting.Error(), ErrUnknownSetting)
	}

	return nil
}

func newError(location, content, path, message string, err error) *Error {
	decodeErr := &Error{
		Location: location,
		Content:  content,
		Path:     path,
		Message:  message,
		Err:      err,
	}
	if key := lastKey(path); key != "" {
		if index := strings.Index(content, key); index >= 0 {
			decodeErr.Span = &Span{Offset: index, Length: len(key)}
		}
	}

	return decodeErr
}

// failure extracts the field path and message of the first leaf error.
func failure(err error) (string, string) {
	leaf := firstLeaf(err)
	match := quotedName.FindStringSubmatchIndex(leaf)
	if match == nil {
		return "", leaf
	}

	name := leaf[match[2]:match[3]]
	message := leaf
	if match[0] == 0 {
		message = strings.TrimSpace(leaf[match[1]:])
	}

	return normalizePath(name), message
}

func firstLeaf(err error) string {
	for {
		switch wrapped := err.(type) { //nolint:errorlint
		case interface{ Unwrap() []error }:
			errs := wrapped.Unwrap()
			if len(errs) == 0 {
				return err.Error()
			}
			err = errs[0]
		case interface{ Unwrap() error }:
			// Stop at the error naming the field rather than its cause.
			next := wrapped.Unwrap()
			if next == nil || !quotedName.MatchString(next.Error()) {
				return err.Error()
			}
			err = next
		default:
			return err.Error()
		}
	}
}

// normalizePath renders map keys like struct fields, e.g. `map[key].name` as `map.key.name`.
func normalizePath(name string) string {
	return bracketKey.ReplaceAllStringFunc(name, func(segment string) string {
		key := segment[1 : len(segment)-1]
		if _, err := strconv.Atoi(key); err == nil {
			return segment
		}

		return "." + key
	})
}

func lastKey(path string) string {
	if i := strings.LastIndexAny(path, ".]"); i >= 0 {
		return path[i+1:]
	}

	return path
}

var (
	quotedName = regexp.MustCompile(`'([^']+)'`)
	bracketKey = regexp.MustCompile(`\[[^\[\]]+\]`)

	defaultDecodeHook = mapstructure.ComposeDecodeHookFunc( //nolint:gochecknoglobals
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)
)
