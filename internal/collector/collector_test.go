package collector_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/trend-tracker/internal/collector"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/domain"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/logger"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/telemetry"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/tokenizer"
)

// One provider per test binary; promauto registers into a global registry.
var (
	testProvider *telemetry.Provider
	providerOnce sync.Once
)

func getTestProvider(t *testing.T) *telemetry.Provider {
	t.Helper()
	providerOnce.Do(func() {
		testProvider = telemetry.NewProvider()
	})
	return testProvider
}

type fakeFetcher struct {
	items []domain.FeedItem
	err   error
}

func (f *fakeFetcher) FetchFrontPage(_ context.Context) ([]domain.FeedItem, error) {
	return f.items, f.err
}

type fakeWriter struct {
	err error

	calls      int
	gotSource  string
	gotRaw     []json.RawMessage
	gotCounts  []domain.WordCount
	snapshotID int64
}

func (w *fakeWriter) RecordSnapshot(
	_ context.Context,
	source string,
	rawItems []json.RawMessage,
	counts []domain.WordCount,
) (int64, error) {
	w.calls++
	w.gotSource = source
	w.gotRaw = rawItems
	w.gotCounts = counts
	if w.err != nil {
		return 0, w.err
	}
	return w.snapshotID, nil
}

func feedItems(titles ...string) []domain.FeedItem {
	items := make([]domain.FeedItem, 0, len(titles))
	for i, title := range titles {
		raw := fmt.Sprintf(`{"objectID":"%d","title":%q}`, i+1, title)
		items = append(items, domain.FeedItem{
			ObjectID: fmt.Sprintf("%d", i+1),
			Title:    title,
			Raw:      json.RawMessage(raw),
		})
	}
	return items
}

func newCollector(t *testing.T, fetcher *fakeFetcher, writer *fakeWriter) *collector.Collector {
	t.Helper()
	return collector.New(
		fetcher,
		tokenizer.New(tokenizer.DefaultStopwords),
		writer,
		getTestProvider(t),
		logger.NewNop(),
		"HackerNews",
	)
}

func TestRunSuccess(t *testing.T) {
	fetcher := &fakeFetcher{items: feedItems(
		"Show HN: new database engine",
		"Ask HN: why is rust so hard",
	)}
	writer := &fakeWriter{snapshotID: 42}

	result, err := newCollector(t, fetcher, writer).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.StageDone, result.Stage)
	assert.Equal(t, int64(42), result.SnapshotID)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 2, result.Titles)
	assert.Equal(t, 4, result.Words)

	// Stopwords and noise stripped; each surviving word counted once.
	require.Equal(t, 1, writer.calls)
	assert.Equal(t, "HackerNews", writer.gotSource)
	require.Len(t, writer.gotCounts, 4)
	words := make([]string, 0, len(writer.gotCounts))
	for _, wc := range writer.gotCounts {
		assert.Equal(t, 1, wc.Count)
		words = append(words, wc.Word)
	}
	assert.ElementsMatch(t, []string{"database", "engine", "rust", "hard"}, words)

	// Summary carries at most the top five.
	assert.LessOrEqual(t, len(result.TopWords), 5)
}

func TestRunCapsRawSample(t *testing.T) {
	titles := make([]string, 0, 8)
	for i := range 8 {
		titles = append(titles, fmt.Sprintf("story number %d about compilers", i))
	}
	fetcher := &fakeFetcher{items: feedItems(titles...)}
	writer := &fakeWriter{snapshotID: 1}

	_, err := newCollector(t, fetcher, writer).Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, writer.gotRaw, collector.RawSampleLimit)
}

func TestRunEmptyFeed(t *testing.T) {
	fetcher := &fakeFetcher{items: nil}
	writer := &fakeWriter{snapshotID: 3}

	result, err := newCollector(t, fetcher, writer).Run(context.Background())
	require.NoError(t, err)

	// A snapshot with zero word rows is still a valid run.
	assert.Equal(t, domain.StageDone, result.Stage)
	assert.Equal(t, int64(3), result.SnapshotID)
	assert.Equal(t, 1, writer.calls)
	assert.Empty(t, writer.gotCounts)
}

func TestRunFetchFailureSkipsPersistence(t *testing.T) {
	fetcher := &fakeFetcher{err: fmt.Errorf("fetch front page: %w", domain.ErrFeedUnavailable)}
	writer := &fakeWriter{snapshotID: 5}

	result, err := newCollector(t, fetcher, writer).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFeedUnavailable))

	assert.Equal(t, domain.StageFailed, result.Stage)
	assert.Equal(t, domain.StageFetching, result.FailedAt)
	assert.Zero(t, result.SnapshotID)
	assert.Equal(t, 0, writer.calls, "nothing may be persisted after a fetch failure")
}

func TestRunPersistFailure(t *testing.T) {
	fetcher := &fakeFetcher{items: feedItems("quantum computing breakthrough")}
	writer := &fakeWriter{err: fmt.Errorf("record snapshot: %w", domain.ErrStorageUnavailable)}

	result, err := newCollector(t, fetcher, writer).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorageUnavailable))

	assert.Equal(t, domain.StageFailed, result.Stage)
	assert.Equal(t, domain.StagePersisting, result.FailedAt)
	assert.Zero(t, result.SnapshotID)
}

func TestRunCapsPersistedWords(t *testing.T) {
	// 60 distinct words; only the top 50 may be written.
	titles := make([]string, 0, 60)
	for i := range 60 {
		titles = append(titles, fmt.Sprintf("word%c%c", rune('a'+i/26), rune('a'+i%26)))
	}
	fetcher := &fakeFetcher{items: feedItems(titles...)}
	writer := &fakeWriter{snapshotID: 9}

	_, err := newCollector(t, fetcher, writer).Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, writer.gotCounts, 50)
}
