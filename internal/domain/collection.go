package domain

import "time"

// Stage identifies where a collection run is in its lifecycle.
// A run moves Idle -> Fetching -> Tokenizing -> Counting -> Persisting -> Done,
// or stops at Failed. Failure during Fetching means nothing was persisted.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageFetching   Stage = "fetching"
	StageTokenizing Stage = "tokenizing"
	StageCounting   Stage = "counting"
	StagePersisting Stage = "persisting"
	StageDone       Stage = "done"
	StageFailed     Stage = "failed"
)

// CollectionResult reports the outcome of a single collection run.
// FailedAt records the stage that was active when a failed run stopped.
type CollectionResult struct {
	RunID      string        `json:"run_id"`
	Stage      Stage         `json:"stage"`
	FailedAt   Stage         `json:"failed_at,omitempty"`
	SnapshotID int64         `json:"snapshot_id,omitempty"`
	Titles     int           `json:"titles"`
	Tokens     int           `json:"tokens"`
	Words      int           `json:"words"`
	TopWords   []WordCount   `json:"top_words"`
	Duration   time.Duration `json:"duration"`
}
