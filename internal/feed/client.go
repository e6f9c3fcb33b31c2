// Package feed fetches the current front page from the Algolia HN search API.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jonesrussell/north-cloud/trend-tracker/internal/domain"
)

// frontPagePath is the search query returning the full front page in one request.
const frontPagePath = "/search?tags=front_page"

// Client is an HTTP client for the feed API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a feed client for the given API base URL
// (e.g. "http://hn.algolia.com/api/v1").
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// searchResponse mirrors the subset of the API payload we consume. Hits are
// kept raw first so each item's original JSON survives into the snapshot.
type searchResponse struct {
	Hits []json.RawMessage `json:"hits"`
}

// FetchFrontPage returns the current front-page stories. Transport errors,
// non-2xx statuses, and undecodable payloads all surface as
// domain.ErrFeedUnavailable; there is no retry.
func (c *Client) FetchFrontPage(ctx context.Context) ([]domain.FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+frontPagePath, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, doErr := c.client.Do(req)
	if doErr != nil {
		return nil, fmt.Errorf("%w: do request: %w", domain.ErrFeedUnavailable, doErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrFeedUnavailable, resp.StatusCode)
	}

	var payload searchResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrFeedUnavailable, decodeErr)
	}

	items := make([]domain.FeedItem, 0, len(payload.Hits))
	for _, raw := range payload.Hits {
		var item domain.FeedItem
		if unmarshalErr := json.Unmarshal(raw, &item); unmarshalErr != nil {
			return nil, fmt.Errorf("%w: decode hit: %w", domain.ErrFeedUnavailable, unmarshalErr)
		}
		item.Raw = raw
		items = append(items, item)
	}

	return items, nil
}
