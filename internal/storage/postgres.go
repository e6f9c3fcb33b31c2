// Package storage persists snapshots and word-velocity records in PostgreSQL.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/north-cloud/trend-tracker/internal/domain"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/logger"
)

// Connection pool settings.
const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

// columnsPerRow is the number of columns inserted per word-velocity row.
const columnsPerRow = 3

// Connect opens a pooled PostgreSQL connection and verifies it with a ping.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	return db, nil
}

// SnapshotRepository manages the snapshots and word_velocity tables.
// Both tables are append-only; rows are never updated or deleted here.
type SnapshotRepository struct {
	db  *sqlx.DB
	log logger.Logger
}

// NewSnapshotRepository creates a repository over the given connection.
func NewSnapshotRepository(db *sqlx.DB, log logger.Logger) *SnapshotRepository {
	return &SnapshotRepository{db: db, log: log}
}

// RecordSnapshot inserts one snapshot row and its word-count rows as a single
// transaction and returns the generated snapshot id. Either every row becomes
// visible or none does; any failure rolls the transaction back and surfaces
// as domain.ErrStorageUnavailable. An empty count list still produces a valid
// snapshot with no word rows.
func (r *SnapshotRepository) RecordSnapshot(
	ctx context.Context,
	source string,
	rawItems []json.RawMessage,
	counts []domain.WordCount,
) (int64, error) {
	rawData, err := marshalRawItems(rawItems)
	if err != nil {
		return 0, fmt.Errorf("marshal raw items: %w", err)
	}

	tx, beginErr := r.db.BeginTxx(ctx, nil)
	if beginErr != nil {
		return 0, fmt.Errorf("%w: begin transaction: %w", domain.ErrStorageUnavailable, beginErr)
	}
	defer func() { _ = tx.Rollback() }()

	var snapshotID int64
	insertSnapshot := `INSERT INTO snapshots (source, raw_data) VALUES ($1, $2) RETURNING id`
	if scanErr := tx.QueryRowContext(ctx, insertSnapshot, source, rawData).Scan(&snapshotID); scanErr != nil {
		return 0, fmt.Errorf("%w: insert snapshot: %w", domain.ErrStorageUnavailable, scanErr)
	}

	if len(counts) > 0 {
		if insertErr := insertWordCounts(ctx, tx, snapshotID, counts); insertErr != nil {
			return 0, insertErr
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return 0, fmt.Errorf("%w: commit transaction: %w", domain.ErrStorageUnavailable, commitErr)
	}

	r.log.Debug("Snapshot recorded",
		logger.Int64("snapshot_id", snapshotID),
		logger.String("source", source),
		logger.Int("word_rows", len(counts)),
	)

	return snapshotID, nil
}

// insertWordCounts executes a single multi-row INSERT for all word counts.
func insertWordCounts(ctx context.Context, tx *sqlx.Tx, snapshotID int64, counts []domain.WordCount) error {
	args := make([]any, 0, len(counts)*columnsPerRow)
	var sb strings.Builder

	sb.WriteString("INSERT INTO word_velocity (word, count, snapshot_id) VALUES ")

	for i := range counts {
		if i > 0 {
			sb.WriteString(", ")
		}

		base := i * columnsPerRow
		fmt.Fprintf(&sb, "($%d, $%d, $%d)", base+1, base+2, base+3)

		args = append(args, counts[i].Word, counts[i].Count, snapshotID)
	}

	if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("%w: insert word counts: %w", domain.ErrStorageUnavailable, err)
	}

	return nil
}

// marshalRawItems encodes the bounded raw sample as a JSON array for the
// snapshot's raw_data column. Nil input encodes as an empty array, never null.
func marshalRawItems(rawItems []json.RawMessage) ([]byte, error) {
	if rawItems == nil {
		rawItems = []json.RawMessage{}
	}
	return json.Marshal(rawItems)
}

// GetSnapshot returns a stored snapshot by id, including its raw sample.
func (r *SnapshotRepository) GetSnapshot(ctx context.Context, id int64) (*domain.Snapshot, error) {
	const query = `SELECT id, source, raw_data, observed_at FROM snapshots WHERE id = $1`

	var snap domain.Snapshot
	if err := r.db.GetContext(ctx, &snap, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get snapshot: %w", domain.ErrStorageUnavailable, err)
	}

	return &snap, nil
}

// TopWords returns words ranked by their summed counts over the trailing
// window, highest first, truncated to limit. An empty store yields an empty
// slice and no error.
func (r *SnapshotRepository) TopWords(
	ctx context.Context,
	window time.Duration,
	limit int,
) ([]domain.WordTrend, error) {
	query := `
		SELECT word, SUM(count) AS total
		FROM word_velocity
		WHERE observed_at > NOW() - $1::interval
		GROUP BY word
		ORDER BY total DESC
		LIMIT $2`

	trends := []domain.WordTrend{}
	if err := r.db.SelectContext(ctx, &trends, query, window.String(), limit); err != nil {
		return nil, fmt.Errorf("%w: query top words: %w", domain.ErrStorageUnavailable, err)
	}

	return trends, nil
}

// Stats returns totals across the whole store.
func (r *SnapshotRepository) Stats(ctx context.Context) (*domain.StoreStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM snapshots)         AS snapshots,
			(SELECT COUNT(*) FROM word_velocity)     AS word_records,
			(SELECT MAX(observed_at) FROM snapshots) AS last_observed`

	var stats domain.StoreStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("%w: query stats: %w", domain.ErrStorageUnavailable, err)
	}

	return &stats, nil
}

// Ping verifies database connectivity, for health checks.
func (r *SnapshotRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}
