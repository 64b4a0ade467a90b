package query

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/theory/jsonpath"
	"github.com/theory/jsonpath/spec"
)

var (
	// ErrInvalidPath indicates a JSONPath expression that does not parse.
	ErrInvalidPath = errors.New("invalid JSONPath")

	// ErrNotFound indicates a JSONPath expression matched nothing.
	ErrNotFound = errors.New("JSONPath matched no value")
)

// Root narrows data to the nodes matched by a JSONPath expression before it
// is projected. A single match is returned as is; several matches are
// returned as a sequence in document order.
//
// The expression is evaluated against a plain copy of data, and every match
// is then resolved in data itself so ordered mappings keep their key order.
func Root(data any, expr string) (any, error) {
	if expr == "" {
		return data, nil
	}

	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrInvalidPath, expr, err)
	}

	nodes := path.SelectLocated(Plain(data))
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, expr)
	}

	out := make([]any, len(nodes))
	for i, node := range nodes {
		v, ok := resolve(data, node.Path)
		if !ok {
			v = node.Node
		}
		out[i] = v
	}
	if len(out) == 1 {
		return out[0], nil
	}
	return out, nil
}

// resolve walks a normalized path through the original value.
func resolve(data any, path spec.NormalizedPath) (any, bool) {
	cur := data
	for _, sel := range path {
		switch sel := sel.(type) {
		case spec.Name:
			v, ok := member(cur, string(sel))
			if !ok {
				return nil, false
			}
			cur = v
		case spec.Index:
			list, ok := cur.([]any)
			if !ok || int(sel) < 0 || int(sel) >= len(list) {
				return nil, false
			}
			cur = list[sel]
		default:
			return nil, false
		}
	}
	return cur, true
}

// member looks name up the way Plain keys it, so the last duplicate wins.
func member(v any, name string) (any, bool) {
	switch v := v.(type) {
	case yaml.MapSlice:
		for i := len(v) - 1; i >= 0; i-- {
			if keyString(v[i].Key) == name {
				return v[i].Value, true
			}
		}
	case map[string]any:
		elem, ok := v[name]
		return elem, ok
	}
	return nil, false
}

// Plain converts yaml.MapSlice values to map[string]any, recursively.
// Non-string keys are formatted with fmt.Sprint.
func Plain(v any) any {
	switch v := v.(type) {
	case yaml.MapSlice:
		out := make(map[string]any, len(v))
		for _, item := range v {
			out[keyString(item.Key)] = Plain(item.Value)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, elem := range v {
			out[k] = Plain(elem)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = Plain(elem)
		}
		return out
	}
	return v
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
