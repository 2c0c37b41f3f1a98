package snyk

import (
	"context"
	"net/url"
	"strings"
)

// paginate follows the next-page cursor from an initial path, collecting
// the data arrays of every page into one slice. Query parameters are
// sent only on the very first request; the server pre-encodes them into
// each next link, which is followed verbatim. Pagination terminates when
// the next link is absent or empty. On a failed page it returns
// everything collected so far together with the cause, so a mid-stream
// failure degrades to a partial result instead of losing earlier pages.
func (c *Client) paginate(ctx context.Context, path string, params url.Values) ([]Resource, error) {
	var all []Resource

	pageURL := c.baseURL + path
	for pageURL != "" {
		var page listResponse
		if err := c.getJSON(ctx, pageURL, params, &page); err != nil {
			return all, err
		}
		all = append(all, page.Data...)

		params = nil
		pageURL = c.resolveNext(page.Links.Next)
	}

	return all, nil
}

// resolveNext turns a server-provided next link into an absolute URL.
// The API returns relative paths; absolute links pass through untouched
// and an empty link stays empty to end the loop.
func (c *Client) resolveNext(next string) string {
	if next == "" {
		return ""
	}
	if strings.HasPrefix(next, "http://") || strings.HasPrefix(next, "https://") {
		return next
	}
	if !strings.HasPrefix(next, "/") {
		next = "/" + next
	}
	return c.baseURL + next
}
