// FILE: appconf/literal.go
package appconf

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// evalLiteral evaluates the value half of a key=value token into a
// typed Go value. The accepted grammar is deliberately small: numbers,
// strings (bare or quoted), booleans, and flow-style sequences and
// mappings. It is a literal grammar, not an expression language, so
// configuration values can never execute anything.
func evalLiteral(s string) (any, error) {
	if s == "" {
		return nil, fmt.Errorf("empty value")
	}

	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("not a valid literal: %w", err)
	}
	if v == nil {
		return nil, fmt.Errorf("value %q evaluates to nothing", s)
	}

	return normalizeLiteral(v)
}

// normalizeLiteral rejects non-literal constructs and canonicalizes
// mapping keys to strings so downstream merge and decode code only
// ever sees map[string]any and []any containers.
func normalizeLiteral(v any) (any, error) {
	switch val := v.(type) {
	case bool, int, int64, uint64, float64, string:
		return val, nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			norm, err := normalizeLiteral(item)
			if err != nil {
				return nil, err
			}
			out[i] = norm
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			norm, err := normalizeLiteral(item)
			if err != nil {
				return nil, err
			}
			out[k] = norm
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported literal type %T", v)
	}
}
