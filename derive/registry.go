// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package derive

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/nil-go/strata"
	"github.com/nil-go/strata/merge"
)

// MergeFunc merges the set values of a setting. A nil result unsets the setting.
type MergeFunc func(ctx context.Context, prev, next any) (any, error)

// TransformFunc transforms the finalized value of a setting.
type TransformFunc func(ctx context.Context, value any) (any, error)

//nolint:gochecknoglobals
var (
	registry = struct {
		merges     map[string]MergeFunc
		transforms map[string]TransformFunc
		mutex      sync.RWMutex
	}{
		merges:     make(map[string]MergeFunc),
		transforms: make(map[string]TransformFunc),
	}

	builtinMerges = map[string]struct{}{
		"": {}, "replace": {}, "preserve": {}, "discard": {}, "append": {}, "prepend": {}, "map": {}, "set": {},
	}
)

// RegisterMerge registers a merge strategy used by the `merge` tag.
//
// It panics if the name is taken by a built-in strategy or fn is nil.
func RegisterMerge(name string, fn MergeFunc) {
	if _, ok := builtinMerges[name]; ok {
		panic(fmt.Sprintf("derive: cannot register built-in merge strategy %q", name))
	}
	if fn == nil {
		panic("derive: cannot register nil merge strategy")
	}

	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	registry.merges[name] = fn
}

// RegisterTransform registers a transform used by the `setting:"transform=name"` tag.
//
// It panics if fn is nil.
func RegisterTransform(name string, fn TransformFunc) {
	if fn == nil {
		panic("derive: cannot register nil transform")
	}

	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	registry.transforms[name] = fn
}

// Merge adapts a typed merge function, e.g. one from the merge package, into a MergeFunc.
func Merge[T any](fn merge.Func[T]) MergeFunc {
	return func(ctx context.Context, prev, next any) (any, error) {
		prevValue, ok := prev.(T)
		if !ok {
			return nil, strata.Errorf("cannot merge %T as %s", prev, reflect.TypeFor[T]())
		}
		nextValue, ok := next.(T)
		if !ok {
			return nil, strata.Errorf("cannot merge %T as %s", next, reflect.TypeFor[T]())
		}

		merged, err := fn(ctx, prevValue, nextValue)
		if err != nil || merged == nil {
			return nil, err
		}

		return *merged, nil
	}
}

// Transform adapts a typed transform function into a TransformFunc.
func Transform[T any](fn func(ctx context.Context, value T) (T, error)) TransformFunc {
	return func(ctx context.Context, value any) (any, error) {
		typed, ok := value.(T)
		if !ok {
			return nil, strata.Errorf("cannot transform %T as %s", value, reflect.TypeFor[T]())
		}

		return fn(ctx, typed)
	}
}

func mergeValues(ctx context.Context, strategy string, prev, next any) (any, error) {
	switch strategy {
	case "", "replace":
		return next, nil
	case "preserve":
		return prev, nil
	case "discard":
		return nil, nil
	case "append":
		return concat(prev, next)
	case "prepend":
		return concat(next, prev)
	case "map", "set":
		return union(prev, next)
	}

	registry.mutex.RLock()
	fn, ok := registry.merges[strategy]
	registry.mutex.RUnlock()
	if !ok {
		return nil, strata.Errorf("unknown merge strategy %q", strategy)
	}

	return fn(ctx, prev, next)
}

func transform(ctx context.Context, name string, value any) (any, error) {
	registry.mutex.RLock()
	fn, ok := registry.transforms[name]
	registry.mutex.RUnlock()
	if !ok {
		return nil, strata.Errorf("unknown transform %q", name)
	}

	return fn(ctx, value)
}

func concat(first, second any) (any, error) {
	firstVal, secondVal := reflect.ValueOf(first), reflect.ValueOf(second)
	if firstVal.Kind() != reflect.Slice || firstVal.Type() != secondVal.Type() {
		return nil, strata.Errorf("cannot concatenate %T and %T", first, second)
	}

	result := reflect.MakeSlice(firstVal.Type(), 0, firstVal.Len()+secondVal.Len())
	result = reflect.AppendSlice(result, firstVal)
	result = reflect.AppendSlice(result, secondVal)

	return result.Interface(), nil
}

// union returns the entries of both maps, preferring next.
func union(prev, next any) (any, error) {
	prevVal, nextVal := reflect.ValueOf(prev), reflect.ValueOf(next)
	if prevVal.Kind() != reflect.Map || prevVal.Type() != nextVal.Type() {
		return nil, strata.Errorf("cannot union %T and %T", prev, next)
	}

	result := reflect.MakeMapWithSize(prevVal.Type(), prevVal.Len()+nextVal.Len())
	for _, values := range []reflect.Value{prevVal, nextVal} {
		iter := values.MapRange()
		for iter.Next() {
			result.SetMapIndex(iter.Key(), iter.Value())
		}
	}

	return result.Interface(), nil
}
