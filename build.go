package subobject

import (
	"reflect"

	"github.com/goccy/go-yaml"
)

// Build returns the part of value selected by selectors.
//
// Sequences are projected element by element with the same selectors, so
// nested sequences are handled transitively. Maps keep only the selected
// keys that are present; a selector with children projects the value at
// its key, one without copies it as is. Any other value is returned
// unchanged, which makes children inert on scalars and nil.
//
// Containers in the result are always freshly allocated; leaf values are
// shared with the input. A yaml.MapSlice input yields a yaml.MapSlice whose
// entries follow the order of selectors. Build never modifies value and is
// safe for concurrent use.
//
// Recursion depth follows the selected depth of value. Selector nesting is
// bounded by Parse; callers building trees by hand from untrusted input
// should bound them too.
func Build(selectors []Selector, value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = Build(selectors, elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(selectors))
		for _, s := range selectors {
			field, ok := v[s.Key]
			if !ok {
				continue
			}
			out[s.Key] = project(s, field)
		}
		return out
	case yaml.MapSlice:
		return buildMapSlice(selectors, v)
	case []byte:
		return value
	}

	return buildReflect(selectors, value)
}

func project(s Selector, field any) any {
	if s.Children == nil {
		return field
	}
	return Build(s.Children, field)
}

func buildMapSlice(selectors []Selector, in yaml.MapSlice) yaml.MapSlice {
	index := make(map[string]int, len(in))
	for i, item := range in {
		if key, ok := item.Key.(string); ok {
			index[key] = i
		}
	}

	out := make(yaml.MapSlice, 0, len(selectors))
	written := make(map[string]int, len(selectors))
	for _, s := range selectors {
		i, ok := index[s.Key]
		if !ok {
			continue
		}

		field := project(s, in[i].Value)
		if at, dup := written[s.Key]; dup {
			out[at].Value = field
			continue
		}
		written[s.Key] = len(out)
		out = append(out, yaml.MapItem{Key: s.Key, Value: field})
	}
	return out
}

// buildReflect handles typed Go containers such as []map[string]any or
// map[string]string. Everything else is a scalar.
func buildReflect(selectors []Selector, value any) any {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return value
		}
		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Build(selectors, rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
			return value
		}
		out := make(map[string]any, len(selectors))
		for _, s := range selectors {
			field := rv.MapIndex(reflect.ValueOf(s.Key).Convert(rv.Type().Key()))
			if !field.IsValid() {
				continue
			}
			out[s.Key] = project(s, field.Interface())
		}
		return out
	}
	return value
}
