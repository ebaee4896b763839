// Package normalize contains pure extraction and classification helpers for
// the loosely-typed JSON the Berdu API returns. Every function is total:
// malformed input yields a zero value or "no value", never a panic or error.
package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Number extracts a numeric value from a JSON scalar. Booleans and
// empty/unparseable strings yield no value rather than zero, so a missing
// stock figure stays distinguishable from an explicit zero. Numeric strings
// containing "." parse as reals, others as integers.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case bool:
		return 0, false
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		cleaned := strings.TrimSpace(n)
		if cleaned == "" {
			return 0, false
		}
		if strings.Contains(cleaned, ".") {
			f, err := strconv.ParseFloat(cleaned, 64)
			if err != nil {
				return 0, false
			}
			return f, true
		}
		i, err := strconv.ParseInt(cleaned, 10, 64)
		if err != nil {
			return 0, false
		}
		return float64(i), true
	default:
		return 0, false
	}
}

// MappingList extracts a list of mappings from a payload that is either a
// bare list or a mapping wrapping the list under one of the candidate keys,
// tried in order. Non-mapping elements are dropped.
func MappingList(payload any, keys ...string) []map[string]any {
	if list, ok := payload.([]any); ok {
		return mappingsOf(list)
	}
	if m, ok := payload.(map[string]any); ok {
		for _, key := range keys {
			if list, ok := m[key].([]any); ok {
				return mappingsOf(list)
			}
		}
	}
	return nil
}

func mappingsOf(list []any) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// stringField probes the candidate keys in order and returns the first
// non-empty trimmed string value.
func stringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// Text renders a scalar of any type as a trimmed string. Used where the API
// interchangeably sends "42" and 42 for the same field.
func Text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return strings.TrimSpace(s.String())
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}
