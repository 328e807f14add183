// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package strata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/nil-go/strata/format"
	"github.com/nil-go/strata/internal"
	"github.com/nil-go/strata/internal/locate"
)

// Loader loads a configuration of type T by layering its partial P from sources.
//
// The sources are merged in the order they are added, and each source is preceded by
// the sources it extends. Defaults come first and environment variables last,
// and the result is validated before it is converted to T.
//
// To create a new Loader, call [NewLoader].
type Loader[T any, P PartialConfig[P], C interface {
	*T
	Config[P]
}] struct {
	nocopy internal.NoCopy[Loader[T, P, C]]

	options
	cacherMutex sync.Mutex

	sources []Source
}

// NewLoader creates a Loader with the given Option(s).
//
// The pointer of T must implement Config[P], so the type parameter C is always inferred:
//
//	loader := strata.NewLoader[AppConfig, PartialAppConfig]()
func NewLoader[T any, P PartialConfig[P], C interface {
	*T
	Config[P]
}](opts ...Option) *Loader[T, P, C] {
	return &Loader[T, P, C]{options: apply(opts)}
}

// Code adds inline content in the given format as a source.
func (l *Loader[T, P, C]) Code(code string, f format.Format) error {
	source, err := CodeSource(code, f)
	if err != nil {
		return err
	}
	l.Source(source)

	return nil
}

// File adds a file as a source. The file must exist when loading.
func (l *Loader[T, P, C]) File(path string) error {
	source, err := FileSource(path, true)
	if err != nil {
		return err
	}
	l.Source(source)

	return nil
}

// FileOptional adds a file as a source. A missing file is loaded as empty content.
func (l *Loader[T, P, C]) FileOptional(path string) error {
	source, err := FileSource(path, false)
	if err != nil {
		return err
	}
	l.Source(source)

	return nil
}

// URL adds a URL as a source.
func (l *Loader[T, P, C]) URL(url string) error {
	source, err := URLSource(url)
	if err != nil {
		return err
	}
	l.Source(source)

	return nil
}

// Source adds a source that is already resolved.
func (l *Loader[T, P, C]) Source(source Source) *Loader[T, P, C] {
	l.nocopy.Check()
	l.sources = append(l.sources, source)

	return l
}

// SetCacher sets the cache for the content of URL sources.
func (l *Loader[T, P, C]) SetCacher(cacher Cacher) *Loader[T, P, C] {
	l.cacherMutex.Lock()
	defer l.cacherMutex.Unlock()

	l.cacher = cacher

	return l
}

// SetHelp sets the help text attached to parse and validation errors.
func (l *Loader[T, P, C]) SetHelp(help string) *Loader[T, P, C] {
	l.help = help

	return l
}

// SetRoot sets the directory that file locations are relative to in error messages.
func (l *Loader[T, P, C]) SetRoot(root string) *Loader[T, P, C] {
	l.root = root

	return l
}

// Load loads the configuration with a background context.
func (l *Loader[T, P, C]) Load() (*Result[T, P], error) {
	return l.LoadWithContext(context.Background())
}

// LoadWithContext parses, merges, finalizes and validates all sources into the final configuration.
// The context is passed to every default, merge and validate function,
// and cancels fetching URL sources.
func (l *Loader[T, P, C]) LoadWithContext(ctx context.Context) (*Result[T, P], error) {
	l.nocopy.Check()

	name := configName[T]()
	l.logger.DebugContext(ctx, "Loading configuration.", "config", name)

	layers, err := l.parseIntoLayers(ctx, l.sources, nil)
	if err != nil {
		return nil, err
	}
	partial, err := l.mergeLayers(ctx, layers)
	if err != nil {
		return nil, err
	}

	partial, err = partial.Finalize(ctx, l.environ)
	if err != nil {
		return nil, fmt.Errorf("finalize %s: %w", name, err)
	}

	if err := Validate(ctx, partial, true); err != nil {
		location := name
		if len(layers) > 0 {
			location = l.location(layers[len(layers)-1].Source)
		}

		return nil, l.validationError(location, err)
	}

	var config T
	C(&config).FromPartial(partial)
	l.logger.DebugContext(ctx, "Loaded configuration.", "config", name, "layers", len(layers))

	return &Result[T, P]{Config: config, Layers: layers}, nil
}

// LoadPartial parses and merges all sources into a partial configuration,
// without defaults, environment variables or the final validation.
func (l *Loader[T, P, C]) LoadPartial(ctx context.Context) (P, error) {
	l.nocopy.Check()

	l.logger.DebugContext(ctx, "Loading partial configuration.", "config", configName[T]())

	var partial P
	layers, err := l.parseIntoLayers(ctx, l.sources, nil)
	if err != nil {
		return partial, err
	}

	return l.mergeLayers(ctx, layers)
}

// parseIntoLayers parses the sources in order, preceding each one with the layers it extends.
// The stack holds the sources being extended, to detect cycles.
func (l *Loader[T, P, C]) parseIntoLayers(ctx context.Context, sources []Source, stack []Source) ([]Layer[P], error) {
	var layers []Layer[P]
	for _, source := range sources {
		if index := slices.IndexFunc(stack, source.same); index >= 0 {
			chain := make([]string, 0, len(stack)-index+1)
			for _, s := range stack[index:] {
				chain = append(chain, l.location(s))
			}

			return nil, &ExtendsCycleError{Chain: append(chain, l.location(source))}
		}

		location := l.location(source)
		l.logger.DebugContext(ctx, "Creating layer from source.", "source", source.String(), "location", location)

		content, err := l.read(ctx, source)
		if err != nil {
			return nil, err
		}
		partial, err := l.parse(source, location, content)
		if err != nil {
			return nil, err
		}

		// Validate before extending so the error points to the source of the invalid value.
		if err := Validate(ctx, partial, false); err != nil {
			return nil, l.validationError(location, err)
		}

		if refs := partial.ExtendsFrom().Sources(); len(refs) > 0 {
			extended := make([]Source, 0, len(refs))
			for _, ref := range refs {
				extend, err := newSource(ref, &source, l.schemes())
				if err != nil {
					return nil, fmt.Errorf("extend %s from %s: %w", ref, location, err)
				}
				l.logger.DebugContext(ctx, "Extending additional source.", "source", extend.String(), "location", location)
				extended = append(extended, extend)
			}

			extendedLayers, err := l.parseIntoLayers(ctx, extended, slices.Concat(stack, []Source{source}))
			if err != nil {
				return nil, err
			}
			layers = append(layers, extendedLayers...)
		}

		layers = append(layers, Layer[P]{Source: source, Partial: partial})
	}

	return layers, nil
}

func (l *Loader[T, P, C]) mergeLayers(ctx context.Context, layers []Layer[P]) (P, error) {
	l.logger.DebugContext(ctx, "Merging partial layers into a final result.", "layers", len(layers))

	var merged P
	for _, layer := range layers {
		var err error
		if merged, err = merged.Merge(ctx, layer.Partial); err != nil {
			return merged, fmt.Errorf("merge %s: %w", l.location(layer.Source), err)
		}
	}

	return merged, nil
}

func (l *Loader[T, P, C]) parse(source Source, location, content string) (P, error) {
	var partial P

	values, err := source.Format().Parse(content, location)
	if err == nil {
		switch decoder, ok := any(&partial).(Decoder); {
		case ok:
			err = decoder.DecodeDocument(values, location, content)
		case AllowsUnknownSettings(&partial):
			err = format.DecodeAllowUnknown(values, &partial, location, content, ExtendsFromHook)
		default:
			err = format.Decode(values, &partial, location, content, ExtendsFromHook)
		}
	}
	if err != nil {
		var formatErr *format.Error
		if errors.As(err, &formatErr) {
			return partial, &ParseError{Location: location, Help: l.help, Err: formatErr}
		}

		return partial, fmt.Errorf("parse %s: %w", location, err)
	}

	return partial, nil
}

func (l *Loader[T, P, C]) validationError(location string, err error) error {
	var validatorErr *ValidatorError
	if errors.As(err, &validatorErr) {
		return &ValidationError{Location: location, Help: l.help, Err: validatorErr}
	}

	return fmt.Errorf("validate %s: %w", location, err)
}

func (l *Loader[T, P, C]) read(ctx context.Context, source Source) (string, error) {
	switch source.Kind() {
	case CodeKind:
		return source.Code(), nil
	case FileKind:
		return l.readFile(source)
	case URLKind:
		content, err := l.readURL(ctx, source.URL())

		return string(content), err
	default:
		return "", ErrInvalidCode
	}
}

func (l *Loader[T, P, C]) readFile(source Source) (string, error) {
	var (
		content []byte
		err     error
	)
	if l.fsys == nil {
		content, err = os.ReadFile(source.Path())
	} else {
		content, err = fs.ReadFile(l.fsys, strings.TrimPrefix(path.Clean(filepath.ToSlash(source.Path())), "/"))
	}

	switch {
	case err == nil:
		return string(content), nil
	case errors.Is(err, fs.ErrNotExist):
		if source.Required() {
			return "", &MissingFileError{Path: source.Path()}
		}

		return "", nil
	default:
		return "", &ReadFileError{Path: source.Path(), Err: err}
	}
}

func (l *Loader[T, P, C]) readURL(ctx context.Context, url string) ([]byte, error) {
	schemes := l.schemes()
	if !locate.IsSecureURL(url) && !locate.HasScheme(url, schemes) {
		return nil, &HTTPSOnlyError{URL: url}
	}

	content, ok, err := l.readCache(url)
	if err != nil {
		return nil, fmt.Errorf("read cache for %s: %w", url, err)
	}
	if ok {
		l.logger.DebugContext(ctx, "Read source from cache.", "url", url)

		return content, nil
	}

	fetcher, ok := l.fetchers[locate.Scheme(url)]
	if !ok {
		fetcher = httpFetcher{client: l.client}
	}
	if content, err = fetcher.Fetch(ctx, url); err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	l.logger.DebugContext(ctx, "Fetched source.", "url", url, "bytes", len(content))

	if err := l.writeCache(url, content); err != nil {
		return nil, fmt.Errorf("write cache for %s: %w", url, err)
	}

	return content, nil
}

func (l *Loader[T, P, C]) readCache(url string) ([]byte, bool, error) {
	l.cacherMutex.Lock()
	defer l.cacherMutex.Unlock()

	if l.cacher == nil {
		return nil, false, nil
	}

	return l.cacher.Read(url)
}

func (l *Loader[T, P, C]) writeCache(url string, content []byte) error {
	l.cacherMutex.Lock()
	defer l.cacherMutex.Unlock()

	if l.cacher == nil {
		return nil
	}

	return l.cacher.Write(url, content)
}

// location names the source in diagnostics.
func (l *Loader[T, P, C]) location(source Source) string {
	switch source.Kind() {
	case FileKind:
		if l.root == "" {
			return source.Path()
		}
		rel, err := filepath.Rel(l.root, source.Path())
		if err != nil || strings.HasPrefix(rel, "..") {
			return source.Path()
		}

		return rel
	case URLKind:
		return source.URL()
	default:
		return configName[T]()
	}
}
