package aiclient

import (
	"encoding/json"
	"fmt"
	"strings"

	"invitely/api-gateway/internal/fields"
)

// NormalizeFields parses the model's JSON object and maps it onto the schema
// keys. String values are kept (trimmed); non-string values and missing keys
// become ""; keys outside the schema are dropped.
func NormalizeFields(raw []byte) (map[string]string, error) {
	var obj map[string]any
	if err := json.Unmarshal(stripFences(raw), &obj); err != nil {
		return nil, fmt.Errorf("parsing model JSON: %w", err)
	}
	if obj == nil {
		return nil, fmt.Errorf("parsing model JSON: expected an object")
	}

	keys := fields.Keys()
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		s, ok := obj[key].(string)
		if !ok {
			out[key] = ""
			continue
		}
		out[key] = strings.TrimSpace(s)
	}
	return out, nil
}

// stripFences removes a surrounding ```json fence some models add despite a
// JSON response format.
func stripFences(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(s, "```") {
		return []byte(s)
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return []byte(strings.TrimSpace(s))
}
