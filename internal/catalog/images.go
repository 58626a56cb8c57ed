package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ImageURL assembles the absolute URL for a relative image path returned by
// search or detail responses. Empty paths yield "".
func (c *Client) ImageURL(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || c.imageBase == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.imageBase + "/" + c.posterSize + path
}

// FetchImage downloads poster or profile bytes. Callers treat failures as
// best-effort: a missing image degrades the view, it never aborts the
// enclosing operation.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch image: build request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := c.imageClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("fetch image: unexpected content-type %q", ct)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch image: read body: %w", err)
	}
	return data, nil
}
