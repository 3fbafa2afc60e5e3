// Package fields implements sparse-fieldset projection for JSON-like
// response objects, driven by the opt_fields query parameter.
//
// A selector is a set of dotted paths ("name", "assignee.name"). Projection
// keeps only the selected fields, always retaining the identity keys gid and
// resource_type, and recurses into nested objects addressed by a "<key>."
// prefix. An empty selector is the identity. Selecting a field the object
// does not carry is silently ignored; projection is a best-effort view, not a
// schema-validated query.
package fields

import "strings"

// Identity keys retained by every projection regardless of the selector.
const (
	KeyGid          = "gid"
	KeyResourceType = "resource_type"
)

// Selector is a parsed set of requested field paths.
type Selector map[string]struct{}

// Parse splits a raw opt_fields value on commas, trimming whitespace and
// dropping empty segments. Absent or all-empty input yields an empty
// selector, which Project treats as "no filtering".
func Parse(raw string) Selector {
	if raw == "" {
		return nil
	}
	sel := Selector{}
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			sel[f] = struct{}{}
		}
	}
	if len(sel) == 0 {
		return nil
	}
	return sel
}

// Has reports whether a field is requested, either exactly or as the prefix
// of a nested path. An empty selector requests everything.
func (s Selector) Has(field string) bool {
	if len(s) == 0 {
		return true
	}
	if _, ok := s[field]; ok {
		return true
	}
	prefix := field + "."
	for f := range s {
		if strings.HasPrefix(f, prefix) {
			return true
		}
	}
	return false
}

// sub returns the selector entries nested under key, with the "<key>."
// prefix stripped. Nil when nothing descends into key.
func (s Selector) sub(key string) Selector {
	prefix := key + "."
	var nested Selector
	for f := range s {
		if rest, ok := strings.CutPrefix(f, prefix); ok && rest != "" {
			if nested == nil {
				nested = Selector{}
			}
			nested[rest] = struct{}{}
		}
	}
	return nested
}

// Project filters v down to the selected fields. Objects are projected
// key-by-key, lists element-by-element with the same selector; any other
// value passes through unchanged. Projection is idempotent: applying the
// same selector to its own output is a no-op.
func Project(v any, sel Selector) any {
	if len(sel) == 0 {
		return v
	}
	switch t := v.(type) {
	case map[string]any:
		return projectObject(t, sel, true)
	case []map[string]any:
		out := make([]map[string]any, len(t))
		for i, item := range t {
			out[i] = projectObject(item, sel, true)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Project(item, sel)
		}
		return out
	default:
		return v
	}
}

// projectObject filters one object. Identity keys are retained only at the
// top level; a nested object addressed by a dotted path keeps just the
// selected suffix fields.
func projectObject(obj map[string]any, sel Selector, identity bool) map[string]any {
	out := make(map[string]any, len(sel)+2)
	for key, value := range obj {
		if identity && (key == KeyGid || key == KeyResourceType) {
			out[key] = value
			continue
		}
		if nestedObj, ok := value.(map[string]any); ok {
			if nested := sel.sub(key); nested != nil {
				out[key] = projectObject(nestedObj, nested, false)
				continue
			}
		}
		if _, ok := sel[key]; ok {
			out[key] = value
		}
	}
	return out
}
