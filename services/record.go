package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Record is one raw row returned by the store: its field names mapped to
// loosely-typed values, with the record id merged in under "id".
type Record map[string]any

// ID returns the store record id.
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// FirstPresent returns the first truthy value among the candidate keys.
func FirstPresent(r Record, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && truthy(v) {
			return v, true
		}
	}
	return nil, false
}

// Number resolves the first truthy candidate as a number, coercing numeric
// strings and single-value lookup arrays. Any non-empty string resolves, so
// "0" stops the search and text that is not a number yields 0. Absent
// everywhere yields 0.
func Number(r Record, keys ...string) float64 {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || !truthy(v) {
			continue
		}
		n, ok := toNumber(v)
		if _, isText := v.(string); isText {
			if !ok {
				return 0
			}
			return n
		}
		if ok && n != 0 {
			return n
		}
	}
	return 0
}

// String resolves the first truthy candidate as text. Linked-record arrays
// resolve to their first string element. Absent everywhere yields "".
func String(r Record, keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || !truthy(v) {
			continue
		}
		if s := toString(v); s != "" {
			return s
		}
	}
	return ""
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case float32:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	case int32:
		return x != 0
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	default:
		// lists and objects count as present even when empty
		return true
	}
}

func toNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) {
			return 0, false
		}
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	case []any:
		if len(x) == 0 {
			return 0, true
		}
		if len(x) == 1 {
			return toNumber(x[0])
		}
		return 0, false
	default:
		return 0, false
	}
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []any:
		for _, e := range x {
			if s, ok := e.(string); ok && s != "" {
				return s
			}
		}
		return ""
	case []string:
		for _, s := range x {
			if s != "" {
				return s
			}
		}
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// listContains reports whether v is a list holding target.
func listContains(v any, target string) bool {
	switch x := v.(type) {
	case []any:
		for _, e := range x {
			if s, ok := e.(string); ok && s == target {
				return true
			}
		}
	case []string:
		for _, s := range x {
			if s == target {
				return true
			}
		}
	}
	return false
}
