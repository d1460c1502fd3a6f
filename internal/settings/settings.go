// Package settings models the opaque configuration blob attached to
// entities and features: a nested mapping of JSON-safe scalars with one
// encode/decode boundary at the storage edge.
package settings

import (
	"encoding/json"
	"regexp"
	"strings"

	"gorm.io/datatypes"
)

// Map is a settings mapping. Values are bool, float64, string, []any or
// nested map[string]any, mirroring what encoding/json produces.
type Map map[string]any

var (
	keyPattern = regexp.MustCompile(`[^a-z0-9_-]`)
	tagPattern = regexp.MustCompile(`<[^>]*>`)
)

// SanitizeKey normalizes a settings key to the safe charset: lowercase
// alphanumerics, underscore and dash. Everything else is stripped.
func SanitizeKey(key string) string {
	return keyPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(key)), "")
}

// SanitizeText strips markup and control characters from free-form text.
func SanitizeText(text string) string {
	text = tagPattern.ReplaceAllString(text, "")
	text = strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(text)
}

// Sanitize normalizes keys and coerces values recursively. Booleans and
// numbers keep their type, strings are sanitized as plain text, nested
// mappings and lists recurse. Keys that sanitize to "" are dropped.
func Sanitize(m Map) Map {
	out := make(Map, len(m))
	for key, value := range m {
		safe := SanitizeKey(key)
		if safe == "" {
			continue
		}
		out[safe] = sanitizeValue(value)
	}
	return out
}

func sanitizeValue(value any) any {
	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return v
	case float32:
		return float64(v)
	case float64:
		return v
	case string:
		return SanitizeText(v)
	case []any:
		list := make([]any, 0, len(v))
		for _, item := range v {
			list = append(list, sanitizeValue(item))
		}
		return list
	case Map:
		return map[string]any(Sanitize(v))
	case map[string]any:
		return map[string]any(Sanitize(Map(v)))
	case nil:
		return nil
	default:
		return SanitizeText(toString(v))
	}
}

func toString(value any) string {
	raw, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return strings.Trim(string(raw), `"`)
}

// Encode serializes a mapping for the settings column.
func Encode(m Map) (datatypes.JSON, error) {
	if m == nil {
		m = Map{}
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// Decode deserializes a settings column. A nil, empty or malformed blob
// yields an empty mapping, never an error.
func Decode(raw datatypes.JSON) Map {
	if len(raw) == 0 {
		return Map{}
	}
	var m Map
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return Map{}
	}
	return m
}

// Merge overlays override onto base key-by-key at the top level and
// returns a new mapping. Neither input is mutated.
func Merge(base, override Map) Map {
	out := make(Map, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// Clone deep-copies a mapping through a JSON round trip, so mutating the
// copy never leaks into the original.
func Clone(m Map) Map {
	raw, err := json.Marshal(m)
	if err != nil {
		return Map{}
	}
	var out Map
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return Map{}
	}
	return out
}

// Lookup walks a dotted path ("display.position") through nested
// mappings. The second return reports whether the full path existed.
func Lookup(m Map, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var current any = map[string]any(m)
	for _, part := range parts {
		node, ok := current.(map[string]any)
		if !ok {
			if typed, isMap := current.(Map); isMap {
				node = map[string]any(typed)
			} else {
				return nil, false
			}
		}
		current, ok = node[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
