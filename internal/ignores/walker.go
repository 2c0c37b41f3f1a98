package ignores

import (
	"context"
	"time"

	"github.com/snykops/snyk-ignores/internal/logging"
	"github.com/snykops/snyk-ignores/internal/snyk"
	"github.com/snykops/snyk-ignores/pkg/models"
)

// Walker drives the organization → project → ignore-rule traversal. A
// fixed delay is applied after each project's ignore fetch to stay under
// upstream rate limits.
type Walker struct {
	client *snyk.Client
	delay  time.Duration
}

// NewWalker creates a Walker using the given client and inter-project
// delay.
func NewWalker(client *snyk.Client, delay time.Duration) *Walker {
	return &Walker{client: client, delay: delay}
}

// ProcessAll walks every organization and project visible to the token,
// optionally scoped to one group, and returns the flattened ignore
// records in discovery order. A fetch failure drops the affected branch
// and the traversal continues with its siblings; an empty organization
// list is a normal empty result. Cancellation stops the traversal and
// returns the records accumulated so far together with the context
// error.
func (w *Walker) ProcessAll(ctx context.Context, groupID string) ([]models.IgnoreRecord, error) {
	orgs, err := w.client.GetOrganizations(ctx, groupID)
	if err != nil {
		logging.Error("organization fetch incomplete", "group_id", groupID, "error", err)
	}
	if len(orgs) == 0 {
		logging.Warn("no organizations found", "group_id", groupID)
		return nil, ctx.Err()
	}

	var records []models.IgnoreRecord

	for _, org := range orgs {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		if org.ID == "" {
			logging.Warn("skipping organization with missing id", "name", org.Name)
			continue
		}

		logging.Info("processing organization", "name", org.Name, "id", org.ID)

		projects, err := w.client.GetProjects(ctx, org.ID)
		if err != nil {
			logging.Error("project fetch incomplete", "org_id", org.ID, "error", err)
		}

		for _, project := range projects {
			if err := ctx.Err(); err != nil {
				return records, err
			}
			if project.ID == "" {
				logging.Warn("skipping project with missing id", "org_id", org.ID, "name", project.Name)
				continue
			}

			logging.Debug("processing project", "name", project.Name, "id", project.ID)

			records = append(records, w.projectRecords(ctx, org, project)...)

			if err := w.pause(ctx); err != nil {
				return records, err
			}
		}
	}

	logging.Info("traversal complete", "records", len(records))
	return records, nil
}

// projectRecords fetches and flattens one project's ignore rules,
// stamping each record with the enclosing organization and project. A
// fetch failure yields zero records for the project.
func (w *Walker) projectRecords(ctx context.Context, org models.Organization, project models.Project) []models.IgnoreRecord {
	ignoreSet, err := w.client.GetProjectIgnores(ctx, org.ID, project.ID)
	if err != nil {
		logging.Error("ignore fetch failed", "org_id", org.ID, "project_id", project.ID, "error", err)
		return nil
	}

	var records []models.IgnoreRecord
	for _, issue := range ignoreSet.Issues {
		for _, record := range Flatten(issue.IssueID, issue.Entries) {
			record.OrgID = org.ID
			record.OrgName = org.Name
			record.ProjectID = project.ID
			record.ProjectName = project.Name
			records = append(records, record)
		}
	}

	return records
}

// pause applies the fixed inter-project delay, honoring cancellation.
func (w *Walker) pause(ctx context.Context) error {
	if w.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(w.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
