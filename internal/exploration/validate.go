package exploration

import (
	"encoding/json"
	"fmt"
)

// ValidateRaw reports whether a decoded JSON value qualifies as an
// Exploration. The check is intentionally shallow: it verifies that id and
// name are strings, participationRate is numeric, structuralChanges is an
// object, and stories is an array. Nested story records and country codes
// are not deep-validated; unknown extra fields are ignored.
func ValidateRaw(item any) bool {
	obj, ok := item.(map[string]any)
	if !ok || obj == nil {
		return false
	}
	if _, ok := obj["id"].(string); !ok {
		return false
	}
	if _, ok := obj["name"].(string); !ok {
		return false
	}
	if _, ok := obj["participationRate"].(float64); !ok {
		return false
	}
	if _, ok := obj["structuralChanges"].(map[string]any); !ok {
		return false
	}
	if _, ok := obj["stories"].([]any); !ok {
		return false
	}
	return true
}

// DecodeCollection validates every element of a JSON array against
// ValidateRaw and decodes the array into typed records. It returns an error
// naming the first invalid element; a valid empty array decodes to an empty
// slice.
func DecodeCollection(data []byte) ([]Exploration, error) {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("not a JSON array: %w", err)
	}
	for i, item := range raw {
		if !ValidateRaw(item) {
			return nil, fmt.Errorf("element %d is not a valid exploration", i)
		}
	}

	exps := make([]Exploration, 0, len(raw))
	if err := json.Unmarshal(data, &exps); err != nil {
		return nil, fmt.Errorf("decode explorations: %w", err)
	}
	for i := range exps {
		if exps[i].Stories == nil {
			exps[i].Stories = []GeneratedStory{}
		}
	}
	return exps, nil
}
