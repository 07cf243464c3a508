package store

import (
	"encoding/json"
	"fmt"
	"os"

	"fairshare/internal/errors"
	"fairshare/internal/exploration"
)

// ImportFromFile parses path as either a versioned export envelope
// ({"data":[...]}) or a bare exploration array (the legacy shape). Every
// element must pass the shallow structural check; an unrecognized top-level
// shape or any invalid element rejects the whole operation. The caller's
// in-memory state is never touched by a failed import.
func ImportFromFile(path string) ([]exploration.Exploration, error) {
	if path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(path)
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to read import file: %w", err))
	}
	return ImportFromBytes(data)
}

// ImportFromBytes is ImportFromFile over in-memory file contents, shared
// with the web upload handler.
func ImportFromBytes(data []byte) ([]exploration.Exploration, error) {
	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, errors.NewInvalidImport(fmt.Sprintf("file is not valid JSON: %v", err))
	}

	var collection json.RawMessage
	switch v := top.(type) {
	case []any:
		collection = data
	case map[string]any:
		if _, ok := v["data"].([]any); !ok {
			return nil, errors.NewInvalidImport("invalid file structure: expected an array or an object with a data array")
		}
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, errors.NewInvalidImport(fmt.Sprintf("invalid file structure: %v", err))
		}
		collection = envelope.Data
	default:
		return nil, errors.NewInvalidImport("invalid file structure: expected an array or an object with a data array")
	}

	exps, err := exploration.DecodeCollection(collection)
	if err != nil {
		return nil, errors.NewInvalidImport(fmt.Sprintf("file contains invalid exploration data: %v", err))
	}
	return exps, nil
}
