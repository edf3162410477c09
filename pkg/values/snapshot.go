package values

import (
	"errors"
	"fmt"
)

// ErrNotSequence is returned by Entries for a value that is not a sequence
// of objects.
var ErrNotSequence = errors.New("values: expected a sequence of objects")

// Get resolves a path inside a snapshot. Exact keys win over traversal so
// flattened maps (`"languages[0].name": "Go"`) resolve too.
func Get(root map[string]any, raw string) (any, bool) {
	if root == nil {
		return nil, false
	}
	if v, ok := root[raw]; ok {
		return v, true
	}
	path, err := ParsePath(raw)
	if err != nil {
		return nil, false
	}

	var current any = root
	for _, segment := range path {
		if segment.IsIndex() {
			items := Items(current)
			if segment.Index >= len(items) {
				return nil, false
			}
			current = items[segment.Index]
			continue
		}
		node, ok := asMap(current)
		if !ok {
			return nil, false
		}
		next, ok := node[segment.Name]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Items coerces a repeated-group value into its ordered entries. Slices of
// any (as produced by JSON/YAML decoding) are accepted; non-map elements are
// skipped.
func Items(value any) []map[string]any {
	switch typed := value.(type) {
	case []map[string]any:
		return typed
	case []any:
		out := make([]map[string]any, 0, len(typed))
		for _, item := range typed {
			if m, ok := asMap(item); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

// Entries is the strict form of Items for caller supplied documents: value
// must be a sequence and every element an object.
func Entries(value any) ([]map[string]any, error) {
	switch typed := value.(type) {
	case []map[string]any:
		return typed, nil
	case []any:
		out := make([]map[string]any, 0, len(typed))
		for idx, item := range typed {
			m, ok := asMap(item)
			if !ok {
				return nil, fmt.Errorf("%w: element %d is %T", ErrNotSequence, idx, item)
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotSequence, value)
	}
}

func asMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[string]string:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = v
		}
		return out, true
	default:
		return nil, false
	}
}

// Clone deep-copies a snapshot so the copy can be handed out without
// aliasing the owner's maps and slices.
func Clone(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return Clone(typed)
	case []map[string]any:
		clone := make([]map[string]any, len(typed))
		for i, v := range typed {
			clone[i] = Clone(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}
