package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/bednights/internal/common"
	"github.com/Veraticus/bednights/internal/model"
)

// Snapshot is the last successfully fetched collection of an entity.
type Snapshot struct {
	FetchedAt time.Time
	Entity    model.Entity
	Records   []model.Record
}

// SnapshotInfo describes a stored snapshot without its records.
type SnapshotInfo struct {
	FetchedAt time.Time
	Entity    model.Entity
	Count     int
}

// SaveSnapshot replaces the snapshot of an entity.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, entity model.Entity, records []model.Record, fetchedAt time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEntity(entity); err != nil {
		return err
	}
	if records == nil {
		records = []model.Record{}
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s snapshot: %w", entity, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (entity, payload, record_count, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(entity) DO UPDATE SET
			payload = excluded.payload,
			record_count = excluded.record_count,
			fetched_at = excluded.fetched_at`,
		string(entity), string(payload), len(records), fetchedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save %s snapshot: %w", entity, err)
	}
	return nil
}

// LoadSnapshot returns the stored snapshot, or common.ErrNotFound.
func (s *SQLiteStorage) LoadSnapshot(ctx context.Context, entity model.Entity) (Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return Snapshot{}, err
	}
	if err := validateEntity(entity); err != nil {
		return Snapshot{}, err
	}

	var payload string
	var fetchedAt time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM snapshots WHERE entity = ?`, string(entity),
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("%s snapshot: %w", entity, common.ErrNotFound)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load %s snapshot: %w", entity, err)
	}

	var records []model.Record
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode %s snapshot: %w", entity, err)
	}
	return Snapshot{Entity: entity, Records: records, FetchedAt: fetchedAt}, nil
}

// ListSnapshots describes every stored snapshot, most recent first.
func (s *SQLiteStorage) ListSnapshots(ctx context.Context) ([]SnapshotInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT entity, record_count, fetched_at FROM snapshots ORDER BY fetched_at DESC, entity`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		var entity string
		if err := rows.Scan(&entity, &info.Count, &info.FetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		info.Entity = model.Entity(entity)
		out = append(out, info)
	}
	return out, rows.Err()
}

// DeleteSnapshots removes every stored snapshot.
func (s *SQLiteStorage) DeleteSnapshots(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("failed to delete snapshots: %w", err)
	}
	return nil
}
