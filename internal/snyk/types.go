package snyk

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// listResponse is the envelope returned by the REST list endpoints: a
// data array plus an optional next-page link.
type listResponse struct {
	Data  []Resource `json:"data"`
	Links links      `json:"links"`
}

// links holds the pagination cursor. Next is a relative path; an absent
// or empty value terminates pagination.
type links struct {
	Next string `json:"next"`
}

// Resource is a single entity from a REST list response.
type Resource struct {
	ID         string `json:"id"`
	Attributes struct {
		Name string `json:"name"`
	} `json:"attributes"`
}

// DisplayName returns the resource's name attribute, or "Unknown" when
// the response omitted it.
func (r Resource) DisplayName() string {
	if r.Attributes.Name == "" {
		return "Unknown"
	}
	return r.Attributes.Name
}

// RawIgnoreSet holds one project's ignore rules keyed by issue
// identifier. The upstream returns a JSON object; decoding preserves its
// document key order so that output stays reproducible.
type RawIgnoreSet struct {
	Issues []IssueIgnores
}

// IssueIgnores is the ordered list of ignore entries for one issue.
type IssueIgnores struct {
	IssueID string
	Entries []IgnoreEntry
}

// Len returns the number of issue identifiers in the set.
func (s *RawIgnoreSet) Len() int {
	return len(s.Issues)
}

// UnmarshalJSON walks the response object token by token; plain map
// decoding would lose the key order.
func (s *RawIgnoreSet) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to parse ignores response: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("ignores response is not an object (got %v)", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to parse ignores response: %w", err)
		}
		issueID, _ := keyTok.(string)

		var entries []IgnoreEntry
		if err := dec.Decode(&entries); err != nil {
			return fmt.Errorf("failed to parse ignores for issue %q: %w", issueID, err)
		}

		s.Issues = append(s.Issues, IssueIgnores{IssueID: issueID, Entries: entries})
	}

	return nil
}

// wildcardKey is the path key the upstream nests the usable ignore
// payload under.
const wildcardKey = "*"

// IgnoreEntry is one stored ignore rule. The upstream nests the rule's
// payload one level down under a path wildcard key; Detail is nil when
// that payload is absent or empty, and such entries carry no actionable
// detail.
type IgnoreEntry struct {
	Detail *IgnoreDetail
}

// UnmarshalJSON extracts the wildcard-keyed payload. An entry without
// the key, or whose payload is an empty object, leaves Detail nil.
func (e *IgnoreEntry) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("failed to parse ignore entry: %w", err)
	}

	payload, ok := raw[wildcardKey]
	if !ok {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return fmt.Errorf("failed to parse ignore entry payload: %w", err)
	}
	if len(fields) == 0 {
		return nil
	}

	detail := &IgnoreDetail{}
	if err := json.Unmarshal(payload, detail); err != nil {
		return fmt.Errorf("failed to parse ignore entry payload: %w", err)
	}
	e.Detail = detail

	return nil
}

// IgnoreDetail is the usable payload of an ignore rule.
type IgnoreDetail struct {
	Reason     string     `json:"reason"`
	ReasonType string     `json:"reasonType"`
	Created    string     `json:"created"`
	Expires    string     `json:"expires"`
	IgnoredBy  *IgnoredBy `json:"ignoredBy"`
}

// IgnoredBy identifies the actor who created an ignore rule.
type IgnoredBy struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
