// Package models defines data structures shared across the application.
package models

// Organization represents a Snyk organization as discovered during a
// traversal run.
type Organization struct {
	// ID is the organization's opaque identifier
	ID string

	// Name is the organization's display name
	Name string
}

// Project represents a scanned project owned by an organization.
type Project struct {
	// ID is the project's identifier, unique within its organization
	ID string

	// Name is the project's display name
	Name string

	// OrgID references the owning organization
	OrgID string
}

// Group represents a higher-level grouping of organizations, used to
// scope discovery.
type Group struct {
	// ID is the group's identifier
	ID string

	// Name is the group's display name
	Name string
}

// IgnoreRecord is one flattened ignore rule: a single (issue, ignore
// entry) pair together with the organization and project it was found
// under. Fields the upstream response did not populate hold "N/A",
// except Expires which holds "Never".
type IgnoreRecord struct {
	// OrgID and OrgName identify the owning organization
	OrgID   string `json:"org_id"`
	OrgName string `json:"org_name"`

	// ProjectID and ProjectName identify the owning project
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`

	// IssueID is the vulnerability issue the rule suppresses
	IssueID string `json:"issue_id"`

	// Reason is the free-text justification given when ignoring
	Reason string `json:"reason"`

	// ReasonType is the ignore category (e.g. "not-vulnerable")
	ReasonType string `json:"reason_type"`

	// Created is the rule's creation timestamp
	Created string `json:"created"`

	// Expires is the rule's expiration timestamp, or "Never"
	Expires string `json:"expires"`

	// IgnoredByName and IgnoredByEmail identify who created the rule
	IgnoredByName  string `json:"ignored_by_name"`
	IgnoredByEmail string `json:"ignored_by_email"`
}
