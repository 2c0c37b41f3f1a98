// Package export serializes flattened ignore records to record-oriented
// files.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/snykops/snyk-ignores/pkg/models"
)

// ErrNoRecords is returned when there is nothing to export. Callers may
// treat it as a reportable condition rather than a hard failure.
var ErrNoRecords = errors.New("no records to export")

// Columns is the fixed CSV column order.
var Columns = []string{
	"org_id",
	"org_name",
	"project_id",
	"project_name",
	"issue_id",
	"reason",
	"reason_type",
	"created",
	"expires",
	"ignored_by_name",
	"ignored_by_email",
}

// WriteCSV writes one row per record to w using the fixed column
// schema. An empty input writes nothing, not even a header row, and
// returns ErrNoRecords.
func WriteCSV(records []models.IgnoreRecord, w io.Writer) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.OrgID,
			r.OrgName,
			r.ProjectID,
			r.ProjectName,
			r.IssueID,
			r.Reason,
			r.ReasonType,
			r.Created,
			r.Expires,
			r.IgnoredByName,
			r.IgnoredByEmail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	return nil
}

// ExportCSV writes records to a CSV file at path. No file is created
// for an empty input.
func ExportCSV(records []models.IgnoreRecord, path string) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WriteCSV(records, f); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	return nil
}
