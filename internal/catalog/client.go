package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout  = 10 * time.Second
	defaultImageTimeout = 15 * time.Second
	maxSearchLimit      = 10
	fallbackLanguage    = "en-US"
)

// Client provides access to the TMDB API.
type Client struct {
	token       string
	baseURL     string
	language    string
	imageBase   string
	posterSize  string
	httpClient  *http.Client
	imageClient *http.Client
	sleeper     func(time.Duration)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
			c.imageClient = client
		}
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// New creates a TMDB client authenticated with a bearer token.
func New(token, baseURL, language, imageBase, posterSize string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		token:       token,
		baseURL:     baseURL,
		language:    strings.TrimSpace(language),
		imageBase:   strings.TrimRight(strings.TrimSpace(imageBase), "/"),
		posterSize:  strings.TrimSpace(posterSize),
		httpClient:  &http.Client{Timeout: defaultHTTPTimeout},
		imageClient: &http.Client{Timeout: defaultImageTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchMulti searches movies, series, and persons in one query and returns
// up to limit normalized items in response order. An empty remote result is
// an empty slice, never an error.
func (c *Client) SearchMulti(ctx context.Context, query string, limit int) ([]Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	if limit <= 0 || limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("page", "1")
	if c.language != "" {
		params.Set("language", c.language)
	}

	var payload wireSearchResponse
	if err := c.getJSON(ctx, "catalog search", "/search/multi", params, &payload); err != nil {
		return nil, err
	}

	items := make([]Item, 0, limit)
	for _, result := range payload.Results {
		if len(items) == maxSearchLimit || len(items) == limit {
			break
		}
		items = append(items, result.normalize(""))
	}
	return items, nil
}

// GetDetails fetches a single title by id. Person lookups return
// ErrUnsupportedKind: persons have no playable detail page in this domain.
func (c *Client) GetDetails(ctx context.Context, id int64, kind Kind) (Item, error) {
	if kind == KindPerson {
		return Item{}, ErrUnsupportedKind
	}
	if id <= 0 {
		return Item{}, errors.New("catalog id must be positive")
	}

	params := url.Values{}
	if c.language != "" {
		params.Set("language", c.language)
	}

	var payload wireResult
	endpoint := fmt.Sprintf("/%s/%d", kind, id)
	if err := c.getJSON(ctx, "catalog details", endpoint, params, &payload); err != nil {
		return Item{}, err
	}
	return payload.normalize(kind), nil
}

// getJSON performs a GET with bearer auth and decodes the 200 response body
// into out, retrying transient failures per the fixed backoff schedule.
func (c *Client) getJSON(ctx context.Context, op, endpoint string, params url.Values, out any) error {
	return c.withRetry(ctx, op, func() error {
		return c.getJSONOnce(ctx, op, endpoint, params, out)
	})
}

func (c *Client) getJSONOnce(ctx context.Context, op, endpoint string, params url.Values, out any) error {
	target, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return fmt.Errorf("%s: parse url: %w", op, err)
	}
	target.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &Error{Kind: ErrorNetworkUnavailable, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &Error{Kind: statusErrorKind(resp.StatusCode), Op: op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
