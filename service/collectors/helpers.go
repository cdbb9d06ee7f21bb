// Package collectors contains the collector capabilities that turn raw
// resource descriptors into reachability findings.
package collectors

import "strings"

// propString walks a dotted path through a property bag and returns the
// string at the end, or "" when any segment is missing or not a string.
func propString(props map[string]any, path string) string {
	v := propValue(props, path)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// propBool returns the bool at a dotted path; the second return reports
// whether the path resolved to a bool at all.
func propBool(props map[string]any, path string) (bool, bool) {
	v := propValue(props, path)
	b, ok := v.(bool)
	return b, ok
}

// propMap returns the nested object at a dotted path.
func propMap(props map[string]any, path string) map[string]any {
	v := propValue(props, path)
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}

// propSlice returns the array at a dotted path.
func propSlice(props map[string]any, path string) []any {
	v := propValue(props, path)
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}

func propValue(props map[string]any, path string) any {
	if props == nil {
		return nil
	}

	var current any = props
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[key]
		if !ok {
			return nil
		}
	}
	return current
}
