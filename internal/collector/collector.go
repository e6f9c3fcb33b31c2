// Package collector runs one collection pass: fetch the front page, tokenize
// titles, tally words, and persist a snapshot with its top word counts.
package collector

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jonesrussell/north-cloud/trend-tracker/internal/domain"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/frequency"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/logger"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/telemetry"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/tokenizer"
)

// RawSampleLimit is the maximum number of original feed items stored in a
// snapshot's raw payload.
const RawSampleLimit = 5

// FrontPageFetcher fetches the current front-page listing.
type FrontPageFetcher interface {
	FetchFrontPage(ctx context.Context) ([]domain.FeedItem, error)
}

// SnapshotWriter persists a snapshot and its word counts atomically.
type SnapshotWriter interface {
	RecordSnapshot(
		ctx context.Context,
		source string,
		rawItems []json.RawMessage,
		counts []domain.WordCount,
	) (int64, error)
}

// Collector sequences a single synchronous collection run. It holds no
// mutable state between runs; overlapping invocations are the trigger's
// concern, each run's write is atomic on its own.
type Collector struct {
	fetcher   FrontPageFetcher
	tokenizer *tokenizer.Tokenizer
	store     SnapshotWriter
	telemetry *telemetry.Provider
	log       logger.Logger
	source    string
}

// New creates a Collector for the given source label.
func New(
	fetcher FrontPageFetcher,
	tok *tokenizer.Tokenizer,
	store SnapshotWriter,
	tp *telemetry.Provider,
	log logger.Logger,
	source string,
) *Collector {
	return &Collector{
		fetcher:   fetcher,
		tokenizer: tok,
		store:     store,
		telemetry: tp,
		log:       log,
		source:    source,
	}
}

// Run performs one pass: Fetching -> Tokenizing -> Counting -> Persisting.
// A fetch failure aborts before anything is written; a persist failure leaves
// no partial rows behind (the store's transaction guarantees that). The
// returned result is non-nil even on failure and records the failed stage.
func (c *Collector) Run(ctx context.Context) (*domain.CollectionResult, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := c.log.With(logger.String("run_id", runID))

	ctx, span := c.telemetry.Tracer.Start(ctx, "collect")
	defer span.End()
	span.SetAttributes(attribute.String("run_id", runID))

	result := &domain.CollectionResult{RunID: runID, Stage: domain.StageIdle}

	log.Info("Collection run starting", logger.String("source", c.source))

	items, err := c.fetch(ctx, result)
	if err != nil {
		return c.fail(result, domain.StageFetching, start, log, err)
	}

	tokens := c.tokenize(items, result)
	counts := c.count(tokens, result)

	snapshotID, persistErr := c.persist(ctx, items, counts, result)
	if persistErr != nil {
		return c.fail(result, domain.StagePersisting, start, log, persistErr)
	}

	result.Stage = domain.StageDone
	result.SnapshotID = snapshotID
	result.TopWords = frequency.TopN(counts, frequency.TopWordsSummary)
	result.Duration = time.Since(start)

	span.SetAttributes(
		attribute.Int64("snapshot_id", snapshotID),
		attribute.Int("words", result.Words),
	)
	c.telemetry.RecordRun(telemetry.OutcomeSuccess, result.Duration)

	log.Info("Collection run complete",
		logger.Int64("snapshot_id", snapshotID),
		logger.Int("titles", result.Titles),
		logger.Int("words", result.Words),
		logger.Duration("duration", result.Duration),
	)

	return result, nil
}

func (c *Collector) fetch(ctx context.Context, result *domain.CollectionResult) ([]domain.FeedItem, error) {
	result.Stage = domain.StageFetching
	stageStart := time.Now()

	items, err := c.fetcher.FetchFrontPage(ctx)
	c.telemetry.RecordStage(string(domain.StageFetching), time.Since(stageStart))
	if err != nil {
		return nil, err
	}

	result.Titles = len(items)
	c.telemetry.RecordFetch(len(items))

	return items, nil
}

func (c *Collector) tokenize(items []domain.FeedItem, result *domain.CollectionResult) []string {
	result.Stage = domain.StageTokenizing
	stageStart := time.Now()

	titles := make([]string, 0, len(items))
	for i := range items {
		titles = append(titles, items[i].Title)
	}

	tokens := c.tokenizer.Tokenize(titles)
	result.Tokens = len(tokens)
	c.telemetry.RecordStage(string(domain.StageTokenizing), time.Since(stageStart))

	return tokens
}

func (c *Collector) count(tokens []string, result *domain.CollectionResult) []domain.WordCount {
	result.Stage = domain.StageCounting
	stageStart := time.Now()

	counts := frequency.Count(tokens)
	result.Words = len(counts)
	c.telemetry.RecordStage(string(domain.StageCounting), time.Since(stageStart))

	return counts
}

func (c *Collector) persist(
	ctx context.Context,
	items []domain.FeedItem,
	counts []domain.WordCount,
	result *domain.CollectionResult,
) (int64, error) {
	result.Stage = domain.StagePersisting
	stageStart := time.Now()

	persisted := frequency.TopN(counts, frequency.TopWordsPerSnapshot)
	result.Words = len(persisted)

	snapshotID, err := c.store.RecordSnapshot(ctx, c.source, rawSample(items), persisted)
	c.telemetry.RecordStage(string(domain.StagePersisting), time.Since(stageStart))
	if err != nil {
		return 0, err
	}

	c.telemetry.RecordPersist(len(persisted))

	return snapshotID, nil
}

// fail finalizes a failed run, recording which stage was active.
func (c *Collector) fail(
	result *domain.CollectionResult,
	stage domain.Stage,
	start time.Time,
	log logger.Logger,
	err error,
) (*domain.CollectionResult, error) {
	result.Stage = domain.StageFailed
	result.FailedAt = stage
	result.Duration = time.Since(start)

	c.telemetry.RecordRun(telemetry.OutcomeFailed, result.Duration)

	log.Error("Collection run failed",
		logger.String("failed_at", string(stage)),
		logger.Error(err),
	)

	return result, err
}

// rawSample returns the original JSON of at most RawSampleLimit items.
func rawSample(items []domain.FeedItem) []json.RawMessage {
	limit := RawSampleLimit
	if limit > len(items) {
		limit = len(items)
	}

	raw := make([]json.RawMessage, 0, limit)
	for i := range limit {
		raw = append(raw, items[i].Raw)
	}
	return raw
}
