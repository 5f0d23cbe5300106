package geomet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	// PageCeiling is the server-enforced maximum page size.
	PageCeiling = 500

	// defaultPageSize is used by the pagination driver when the caller did
	// not request a page size.
	defaultPageSize = 100

	// pagePause is the politeness delay between successive page requests.
	pagePause = 100 * time.Millisecond

	// errBodyLimit caps how much of an error response body is captured.
	errBodyLimit = 512
)

// Client talks to a GeoMet OGC API endpoint. Each method issues exactly one
// GET request; pagination lives in FetchAll.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *slog.Logger
	clock      clockwork.Clock
	pageDelay  time.Duration
}

// NewClient creates a GeoMet API client. The timeout bounds each individual
// request; the upstream service can take several seconds on large collections.
func NewClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		logger:     logger,
		clock:      clockwork.NewRealClock(),
		pageDelay:  pagePause,
	}
}

// FetchPage issues one items request against a collection and returns the
// parsed page. Errors follow the package taxonomy: NetworkError,
// HTTPStatusError, MalformedResponseError.
func (c *Client) FetchPage(ctx context.Context, collectionID string, spec FilterSpec) (*Page, error) {
	u := fmt.Sprintf("%s/collections/%s/items?%s",
		c.baseURL, url.PathEscape(collectionID), spec.Params().Encode())

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var resp itemsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &MalformedResponseError{URL: u, Reason: "body is not valid JSON", Err: err}
	}
	if resp.Features == nil {
		return nil, &MalformedResponseError{URL: u, Reason: `missing "features" field`}
	}

	features := *resp.Features
	page := &Page{
		Features:       features,
		NumberMatched:  resp.NumberMatched,
		NumberReturned: len(features),
		HasMore:        hasNextLink(resp.Links),
	}
	if resp.NumberReturned != nil {
		page.NumberReturned = *resp.NumberReturned
	}

	c.logger.Debug("fetched page",
		"collection", collectionID,
		"offset", spec.Offset,
		"limit", spec.Limit,
		"returned", len(features),
		"has_more", page.HasMore,
	)
	return page, nil
}

// ListCollections returns metadata for every collection the server exposes.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	u := c.baseURL + "/collections?f=json"
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var resp collectionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &MalformedResponseError{URL: u, Reason: "body is not valid JSON", Err: err}
	}
	if resp.Collections == nil {
		return nil, &MalformedResponseError{URL: u, Reason: `missing "collections" field`}
	}
	return *resp.Collections, nil
}

// GetCollection returns one collection's metadata.
func (c *Client) GetCollection(ctx context.Context, id string) (*Collection, error) {
	u := fmt.Sprintf("%s/collections/%s?f=json", c.baseURL, url.PathEscape(id))
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var col Collection
	if err := json.Unmarshal(body, &col); err != nil {
		return nil, &MalformedResponseError{URL: u, Reason: "body is not valid JSON", Err: err}
	}
	if col.ID == "" {
		col.ID = id
	}
	return &col, nil
}

// Queryables returns the properties a collection declares filterable.
func (c *Client) Queryables(ctx context.Context, id string) (*Queryables, error) {
	u := fmt.Sprintf("%s/collections/%s/queryables?f=json", c.baseURL, url.PathEscape(id))
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var q Queryables
	if err := json.Unmarshal(body, &q); err != nil {
		return nil, &MalformedResponseError{URL: u, Reason: "body is not valid JSON", Err: err}
	}
	return &q, nil
}

// get performs one GET and returns the full body of a 2xx response.
func (c *Client) get(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
		return nil, &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(excerpt),
			URL:        fullURL,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: fullURL, Err: err}
	}
	return body, nil
}

func hasNextLink(links []Link) bool {
	for _, l := range links {
		if l.Rel == "next" {
			return true
		}
	}
	return false
}

// Wire envelopes. Features and Collections are pointers so an absent field
// is distinguishable from an empty one.

type itemsResponse struct {
	Features       *[]Feature `json:"features"`
	Links          []Link     `json:"links"`
	NumberMatched  *int       `json:"numberMatched"`
	NumberReturned *int       `json:"numberReturned"`
}

type collectionsResponse struct {
	Collections *[]Collection `json:"collections"`
}
