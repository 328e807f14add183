// Copyright (c) 2026 The strata authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package derive

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nil-go/strata"
	"github.com/nil-go/strata/internal/credential"
	"github.com/nil-go/strata/internal/maps"
)

// Explain provides information about which layers supply each value
// under the given dot-separated path. It blurs sensitive information.
// An empty path explains the whole configuration.
//
// Defaults and environment variables are not layers, so a value coming
// only from them has no configuration.
func Explain[T any](result *strata.Result[Config[T], Partial[T]], path string) string {
	if result == nil {
		return path + " has no configuration.\n\n"
	}

	info := infoFor[T]()
	layers := make([]explainedLayer, 0, len(result.Layers))
	values := make(map[string]any)
	for _, layer := range result.Layers {
		exported := info.exported(layer.Partial.values)
		maps.Merge(values, exported)
		layers = append(layers, explainedLayer{source: layer.Source.String(), values: exported})
	}

	explanation := &strings.Builder{}
	explain(explanation, layers, path, maps.Sub(values, split(path)))

	return explanation.String()
}

type explainedLayer struct {
	source string
	values map[string]any
}

func explain(explanation *strings.Builder, layers []explainedLayer, path string, value any) {
	if values, ok := value.(map[string]any); ok {
		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			child := key
			if path != "" {
				child = path + "." + key
			}
			explain(explanation, layers, child, values[key])
		}

		return
	}

	type layerValue struct {
		source string
		value  any
	}
	var found []layerValue
	for _, layer := range layers {
		if v := maps.Sub(layer.values, split(path)); v != nil {
			found = append(found, layerValue{layer.source, v})
		}
	}
	slices.Reverse(found)

	if len(found) == 0 {
		explanation.WriteString(path)
		explanation.WriteString(" has no configuration.\n\n")

		return
	}
	explanation.WriteString(path)
	explanation.WriteString(" has value[")
	explanation.WriteString(credential.Blur(path, found[0].value))
	explanation.WriteString("] that is loaded by layer[")
	explanation.WriteString(found[0].source)
	explanation.WriteString("].\n")
	if len(found) > 1 {
		explanation.WriteString("Here are other value(layer)s:\n")
		for _, other := range found[1:] {
			explanation.WriteString("  - ")
			explanation.WriteString(credential.Blur(path, other.value))
			explanation.WriteString(fmt.Sprintf("(%s)\n", other.source))
		}
	}
	explanation.WriteString("\n")
}

func split(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(path, ".")
}
