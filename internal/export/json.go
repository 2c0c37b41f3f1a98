package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/snykops/snyk-ignores/pkg/models"
)

// ExportJSON writes records to path as an indented JSON array,
// preserving the full record structure for archival use. No file is
// created for an empty input.
func ExportJSON(records []models.IgnoreRecord, path string) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
