package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/wayacademy/manychat-bot-go/internal/errors"
	"github.com/wayacademy/manychat-bot-go/internal/record"
)

// Snapshot is a persisted copy of one dataset.
type Snapshot struct {
	Dataset string
	Records []record.Record
	SavedAt time.Time
}

// SaveSnapshot stores records for a dataset, replacing any previous copy.
func (db *DB) SaveSnapshot(ctx context.Context, dataset string, records []record.Record) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", dataset, err)
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO snapshots (dataset, payload, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(dataset) DO UPDATE SET
			payload = excluded.payload,
			saved_at = excluded.saved_at
	`, dataset, string(payload), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", dataset, err)
	}
	return nil
}

// LoadSnapshot returns the persisted records for a dataset.
// Returns ErrNoSnapshot when nothing has been saved yet.
func (db *DB) LoadSnapshot(ctx context.Context, dataset string) (*Snapshot, error) {
	var payload string
	var savedAt int64

	err := db.conn.QueryRowContext(ctx, `
		SELECT payload, saved_at FROM snapshots WHERE dataset = ?
	`, dataset).Scan(&payload, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", dataset, err)
	}

	var records []record.Record
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", dataset, err)
	}

	return &Snapshot{
		Dataset: dataset,
		Records: records,
		SavedAt: time.Unix(savedAt, 0),
	}, nil
}

// SnapshotAges returns the save time of every persisted dataset,
// keyed by dataset name. Used by the readiness endpoint.
func (db *DB) SnapshotAges(ctx context.Context) (map[string]time.Time, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT dataset, saved_at FROM snapshots`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ages := make(map[string]time.Time)
	for rows.Next() {
		var dataset string
		var savedAt int64
		if err := rows.Scan(&dataset, &savedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		ages[dataset] = time.Unix(savedAt, 0)
	}
	return ages, rows.Err()
}
