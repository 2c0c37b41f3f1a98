package snyk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snykops/snyk-ignores/internal/config"
)

// newTestClient builds a client pointed at a fake API server.
func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := NewClient(&config.SnykConfig{
		Token:      "test-token",
		APIURL:     baseURL,
		APIVersion: "2024-10-15",
		PageLimit:  2,
	})
	require.NoError(t, err)

	return client
}

// listPage renders one page of a list response.
func listPage(next string, ids ...string) string {
	type attrs struct {
		Name string `json:"name"`
	}
	type resource struct {
		ID         string `json:"id"`
		Attributes attrs  `json:"attributes"`
	}

	data := make([]resource, 0, len(ids))
	for _, id := range ids {
		data = append(data, resource{ID: id, Attributes: attrs{Name: "name-" + id}})
	}

	page := map[string]any{"data": data}
	if next != "" {
		page["links"] = map[string]string{"next": next}
	}

	b, _ := json.Marshal(page)
	return string(b)
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient(&config.SnykConfig{})
	assert.Error(t, err)
}

func TestClientSendsAuthHeader(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		fmt.Fprint(w, listPage(""))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.GetOrganizations(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "token test-token", gotAuth)
	assert.Equal(t, "application/vnd.api+json", gotContentType)
}

func TestPaginationFollowsNextLinks(t *testing.T) {
	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.String())

		if r.URL.Query().Get("starting_after") == "" {
			fmt.Fprint(w, listPage("/rest/orgs?version=2024-10-15&limit=2&starting_after=org-2", "org-1", "org-2"))
			return
		}
		fmt.Fprint(w, listPage("", "org-3"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	orgs, err := client.GetOrganizations(context.Background(), "")
	require.NoError(t, err)

	// Merged length equals the sum of both pages' data arrays.
	require.Len(t, orgs, 3)
	assert.Equal(t, "org-1", orgs[0].ID)
	assert.Equal(t, "name-org-3", orgs[2].Name)

	// The first request carries the query parameters; the next link is
	// followed verbatim without re-appending them.
	require.Len(t, requests, 2)
	assert.Equal(t, "/rest/orgs?version=2024-10-15&limit=2&starting_after=org-2", requests[1])
}

func TestPaginationStopsOnEmptyNextLink(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		// Explicit empty next rather than an omitted link.
		fmt.Fprint(w, `{"data": [{"id": "org-1", "attributes": {"name": "only"}}], "links": {"next": ""}}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	orgs, err := client.GetOrganizations(context.Background(), "")
	require.NoError(t, err)

	assert.Len(t, orgs, 1)
	assert.Equal(t, 1, calls)
}

func TestPaginationReturnsPartialOnMidStreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("starting_after") == "" {
			fmt.Fprint(w, listPage("/rest/orgs?starting_after=org-2", "org-1", "org-2"))
			return
		}
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	orgs, err := client.GetOrganizations(context.Background(), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Len(t, orgs, 2)
}

func TestPaginationEmptyOnFirstPageFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	orgs, err := client.GetOrganizations(context.Background(), "")

	require.Error(t, err)
	assert.Empty(t, orgs)
}

func TestGetOrganizationsGroupScope(t *testing.T) {
	var gotGroup string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotGroup = r.URL.Query().Get("group_id")
		fmt.Fprint(w, listPage("", "org-1"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.GetOrganizations(context.Background(), "group-42")
	require.NoError(t, err)

	assert.Equal(t, "group-42", gotGroup)
}

func TestGetProjectsPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, listPage("", "proj-1"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	projects, err := client.GetProjects(context.Background(), "org-1")
	require.NoError(t, err)

	assert.Equal(t, "/rest/orgs/org-1/projects", gotPath)
	require.Len(t, projects, 1)
	assert.Equal(t, "org-1", projects[0].OrgID)
}

func TestGetGroups(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/groups", r.URL.Path)
		fmt.Fprint(w, listPage("", "group-1", "group-2"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	groups, err := client.GetGroups(context.Background())
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, "group-1", groups[0].ID)
	assert.Equal(t, "name-group-2", groups[1].Name)
}

func TestGetProjectIgnores(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/org/org-1/project/proj-1/ignores", r.URL.Path)
		fmt.Fprint(w, `{"ISSUE-1": [{"*": {"reason": "false positive"}}]}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	set, err := client.GetProjectIgnores(context.Background(), "org-1", "proj-1")
	require.NoError(t, err)

	require.Equal(t, 1, set.Len())
	assert.Equal(t, "ISSUE-1", set.Issues[0].IssueID)
}

func TestGetProjectIgnoresTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	set, err := client.GetProjectIgnores(context.Background(), "org-1", "proj-1")

	require.Error(t, err)
	assert.Equal(t, 0, set.Len())
}
