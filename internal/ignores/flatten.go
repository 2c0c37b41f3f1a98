// Package ignores implements the organization → project → ignore-rule
// traversal and the flattening of raw ignore data into export records.
package ignores

import (
	"github.com/snykops/snyk-ignores/internal/snyk"
	"github.com/snykops/snyk-ignores/pkg/models"
)

const (
	// notAvailable fills record fields the upstream response left unset.
	notAvailable = "N/A"

	// neverExpires marks rules without an expiration timestamp.
	neverExpires = "Never"
)

// Flatten converts the ignore entries of a single issue into flat
// records, one per entry that carries detail. Entries without detail
// contribute nothing. The function is pure; organization and project
// fields are left blank for the caller to stamp.
func Flatten(issueID string, entries []snyk.IgnoreEntry) []models.IgnoreRecord {
	var records []models.IgnoreRecord

	for _, entry := range entries {
		detail := entry.Detail
		if detail == nil {
			continue
		}

		record := models.IgnoreRecord{
			IssueID:        issueID,
			Reason:         orDefault(detail.Reason, notAvailable),
			ReasonType:     orDefault(detail.ReasonType, notAvailable),
			Created:        orDefault(detail.Created, notAvailable),
			Expires:        orDefault(detail.Expires, neverExpires),
			IgnoredByName:  notAvailable,
			IgnoredByEmail: notAvailable,
		}
		if detail.IgnoredBy != nil {
			record.IgnoredByName = orDefault(detail.IgnoredBy.Name, notAvailable)
			record.IgnoredByEmail = orDefault(detail.IgnoredBy.Email, notAvailable)
		}

		records = append(records, record)
	}

	return records
}

// orDefault returns s, or def when s is empty.
func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
