package domain

import "encoding/json"

// FeedItem is a single front-page story returned by the feed API.
// Raw preserves the provider's original JSON for snapshot storage.
type FeedItem struct {
	ObjectID string `json:"objectID"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Author   string `json:"author"`
	Points   int    `json:"points"`

	Raw json.RawMessage `json:"-"`
}
