package store

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fairshare/internal/errors"
	"fairshare/internal/exploration"
)

// SchemaVersion tags exported files so future readers can branch on shape.
const SchemaVersion = 1

// ExportEnvelope is the versioned wrapper written around an exported
// collection.
type ExportEnvelope struct {
	Version    int                       `json:"version"`
	Data       []exploration.Exploration `json:"data"`
	ExportedAt string                    `json:"exportedAt"`
}

// DefaultExportPath returns the dated default export file path under
// baseDir/exports.
func DefaultExportPath(baseDir string, now time.Time) string {
	filename := fmt.Sprintf("climate-explorations-%s.json", now.Format("2006-01-02"))
	return filepath.Join(baseDir, "exports", filename)
}

// MarshalExport serializes the collection as a versioned, timestamped
// JSON document.
func MarshalExport(exps []exploration.Exploration) ([]byte, error) {
	if exps == nil {
		exps = []exploration.Exploration{}
	}
	envelope := ExportEnvelope{
		Version:    SchemaVersion,
		Data:       exps,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return json.MarshalIndent(envelope, "", "  ")
}

// ExportToFile writes the collection to path as a versioned, timestamped
// JSON document. The file is written to a temp sibling first and renamed
// into place so a failed export preserves any existing file.
func ExportToFile(exps []exploration.Exploration, path string) error {
	data, err := MarshalExport(exps)
	if err != nil {
		return errors.NewInternal(err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to write export file: %w", err))
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}
	return nil
}
