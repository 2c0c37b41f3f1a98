// Package snyk provides the authenticated session, pagination and
// endpoint calls for the Snyk API.
package snyk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/snykops/snyk-ignores/internal/config"
	"github.com/snykops/snyk-ignores/internal/logging"
	"github.com/snykops/snyk-ignores/pkg/models"
)

// Client encapsulates the authenticated Snyk API session. It is
// read-only after construction and reused for every call in a run.
type Client struct {
	baseURL    string
	apiVersion string
	pageLimit  int
	httpClient *http.Client
}

// NewClient creates a Snyk API client from configuration. It builds the
// token-authenticated HTTP client shared by all subsequent calls.
func NewClient(cfg *config.SnykConfig) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("snyk token not found in configuration")
	}

	baseURL := strings.TrimRight(cfg.APIURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultAPIURL
	}

	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = config.DefaultAPIVersion
	}

	pageLimit := cfg.PageLimit
	if pageLimit <= 0 {
		pageLimit = config.DefaultPageLimit
	}

	logging.Info("snyk configuration",
		"api_url", baseURL,
		"api_version", apiVersion,
		"token", logging.MaskSensitive(cfg.Token))

	// Snyk expects "Authorization: token <value>" rather than the Bearer
	// scheme; oauth2 uses the token type verbatim as the header prefix.
	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.Token,
		TokenType:   "token",
	})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = 30 * time.Second

	return &Client{
		baseURL:    baseURL,
		apiVersion: apiVersion,
		pageLimit:  pageLimit,
		httpClient: httpClient,
	}, nil
}

// listParams returns the query parameters sent on the first page of a
// paginated list call.
func (c *Client) listParams() url.Values {
	params := url.Values{}
	params.Set("version", c.apiVersion)
	params.Set("limit", strconv.Itoa(c.pageLimit))
	return params
}

// GetOrganizations retrieves every organization visible to the token,
// optionally scoped to a single group. On a page failure it returns the
// organizations collected so far together with the cause.
func (c *Client) GetOrganizations(ctx context.Context, groupID string) ([]models.Organization, error) {
	params := c.listParams()
	if groupID != "" {
		params.Set("group_id", groupID)
	}

	resources, err := c.paginate(ctx, "/rest/orgs", params)

	orgs := make([]models.Organization, 0, len(resources))
	for _, r := range resources {
		orgs = append(orgs, models.Organization{ID: r.ID, Name: r.DisplayName()})
	}

	if err != nil {
		return orgs, fmt.Errorf("failed to fetch organizations: %w", err)
	}

	logging.Info("fetched organizations", "count", len(orgs), "group_id", groupID)
	return orgs, nil
}

// GetProjects retrieves every project of one organization. On a page
// failure it returns the projects collected so far together with the
// cause.
func (c *Client) GetProjects(ctx context.Context, orgID string) ([]models.Project, error) {
	path := fmt.Sprintf("/rest/orgs/%s/projects", url.PathEscape(orgID))

	resources, err := c.paginate(ctx, path, c.listParams())

	projects := make([]models.Project, 0, len(resources))
	for _, r := range resources {
		projects = append(projects, models.Project{ID: r.ID, Name: r.DisplayName(), OrgID: orgID})
	}

	if err != nil {
		return projects, fmt.Errorf("failed to fetch projects for org %s: %w", orgID, err)
	}

	logging.Info("fetched projects", "count", len(projects), "org_id", orgID)
	return projects, nil
}

// GetGroups retrieves the groups the token has access to.
func (c *Client) GetGroups(ctx context.Context) ([]models.Group, error) {
	params := url.Values{}
	params.Set("version", c.apiVersion)

	var page listResponse
	if err := c.getJSON(ctx, c.baseURL+"/rest/groups", params, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch groups: %w", err)
	}

	groups := make([]models.Group, 0, len(page.Data))
	for _, r := range page.Data {
		groups = append(groups, models.Group{ID: r.ID, Name: r.DisplayName()})
	}

	logging.Info("fetched groups", "count", len(groups))
	return groups, nil
}

// GetProjectIgnores retrieves the ignore rules of one project from the
// v1 API. The response is a single object keyed by issue identifier.
func (c *Client) GetProjectIgnores(ctx context.Context, orgID, projectID string) (RawIgnoreSet, error) {
	u := fmt.Sprintf("%s/v1/org/%s/project/%s/ignores",
		c.baseURL, url.PathEscape(orgID), url.PathEscape(projectID))

	var ignoreSet RawIgnoreSet
	if err := c.getJSON(ctx, u, nil, &ignoreSet); err != nil {
		return RawIgnoreSet{}, fmt.Errorf("failed to fetch ignores for project %s in org %s: %w", projectID, orgID, err)
	}

	logging.Debug("fetched ignores", "org_id", orgID, "project_id", projectID, "issues", ignoreSet.Len())
	return ignoreSet, nil
}

// getJSON issues one authenticated GET and decodes the JSON response
// into out. Query parameters are appended only when params is non-empty.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL += sep + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/vnd.api+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, truncate(body, 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// truncate limits a response body to n bytes for error messages.
func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
