// FILE: appconf/tree.go
package appconf

import (
	"fmt"
	"strings"
)

// Tree is a hierarchical configuration namespace mapping component
// names to their setting maps. A Tree produced by a loader is a
// fragment; the application owns the single long-lived canonical Tree.
//
// Merge is the only way fragments combine. It is structural and
// right-biased: settings of the same component are unioned, and on
// overlap the incoming value wins.
type Tree map[string]map[string]any

// NewTree returns an empty configuration tree.
func NewTree() Tree {
	return make(Tree)
}

// TreeFromMap converts a raw nested map (as produced by a file parser
// or supplied as a flag patch) into a Tree. Every top-level value must
// itself be a mapping; anything else makes the input malformed.
func TreeFromMap(raw map[string]any) (Tree, error) {
	t := NewTree()
	for component, v := range raw {
		settings, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("entry %q is not a table (got %T)", component, v)
		}
		dst := make(map[string]any, len(settings))
		for name, value := range settings {
			dst[name] = copyValue(value)
		}
		t[component] = dst
	}
	return t, nil
}

// Clone returns a deep copy of the tree. Nested sequence and mapping
// values are copied as well, so mutating the clone never affects the
// original.
func (t Tree) Clone() Tree {
	out := make(Tree, len(t))
	for component, settings := range t {
		dst := make(map[string]any, len(settings))
		for name, value := range settings {
			dst[name] = copyValue(value)
		}
		out[component] = dst
	}
	return out
}

// Set assigns a value for component.setting, creating the component
// entry if needed.
func (t Tree) Set(component, setting string, value any) {
	settings, ok := t[component]
	if !ok {
		settings = make(map[string]any)
		t[component] = settings
	}
	settings[setting] = value
}

// Get returns the value stored for component.setting.
func (t Tree) Get(component, setting string) (any, bool) {
	settings, ok := t[component]
	if !ok {
		return nil, false
	}
	v, ok := settings[setting]
	return v, ok
}

// Merge combines two trees into a new one without mutating either
// input. The result holds the union of both trees' components and
// settings; where both define the same component.setting, incoming
// wins. Merge is associative, so fragments can be layered in any
// grouping as long as their order is preserved.
func Merge(base, incoming Tree) Tree {
	out := base.Clone()
	for component, settings := range incoming {
		for name, value := range settings {
			out.Set(component, name, copyValue(value))
		}
	}
	return out
}

// splitPath splits a fully-qualified "Component.setting" path at the
// first dot. Nested setting names keep their remaining dots.
func splitPath(path string) (component, setting string, ok bool) {
	i := strings.Index(path, ".")
	if i <= 0 || i == len(path)-1 {
		return "", "", false
	}
	return path[:i], path[i+1:], true
}

// copyValue deep-copies the nested map/slice values a literal or file
// parser can produce. Scalars are returned as-is.
func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = copyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
