// Package domain contains the core domain models for the trend-tracker service.
package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrFeedUnavailable is returned when the upstream feed cannot be fetched
// or its payload cannot be decoded.
var ErrFeedUnavailable = errors.New("feed unavailable")

// ErrStorageUnavailable is returned when a database write or read fails.
// Failed writes are rolled back; no partial snapshot is ever visible.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrNotFound is returned when an entity is not found in the database.
var ErrNotFound = errors.New("entity not found")

// Snapshot is one immutable observation of the feed. Rows are append-only;
// IDs increase monotonically with collection order.
type Snapshot struct {
	ID         int64           `db:"id"          json:"id"`
	Source     string          `db:"source"      json:"source"`
	RawData    json.RawMessage `db:"raw_data"    json:"raw_data"`
	ObservedAt time.Time       `db:"observed_at" json:"observed_at"`
}

// WordCount is a word and its tally within a single collection run.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// WordTrend is the aggregated total for a word across a trailing window.
type WordTrend struct {
	Word  string `db:"word"  json:"word"`
	Total int64  `db:"total" json:"total"`
}

// StoreStats summarizes the persisted data set for the dashboard footer.
type StoreStats struct {
	Snapshots    int64      `db:"snapshots"     json:"snapshots"`
	WordRecords  int64      `db:"word_records"  json:"word_records"`
	LastObserved *time.Time `db:"last_observed" json:"last_observed,omitempty"`
}

// CollectionStats summarizes the stored corpus for dashboards and monitoring.
type CollectionStats struct {
	Snapshots      int64      `json:"snapshots"`
	WordRows       int64      `json:"word_rows"`
	LastObservedAt *time.Time `json:"last_observed_at,omitempty"`
}
