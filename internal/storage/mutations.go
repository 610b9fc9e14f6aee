package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Veraticus/bednights/internal/model"
)

// Mutation actions.
const (
	ActionUpsert = "upsert"
	ActionDelete = "delete"
)

// Mutation is one journal entry for a create, update or delete sent to the API.
type Mutation struct {
	CreatedAt time.Time
	Entity    model.Entity
	Action    string
	RecordID  string
	Actor     string
	Outcome   string
	ID        int64
	Inserted  int
	Updated   int
}

// RecordMutation appends a journal entry. A zero CreatedAt means now.
func (s *SQLiteStorage) RecordMutation(ctx context.Context, m Mutation) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateMutation(m); err != nil {
		return err
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mutations (entity, action, record_id, inserted_count, updated_count, actor, outcome, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(m.Entity), m.Action, nullString(m.RecordID), m.Inserted, m.Updated,
		nullString(m.Actor), nullString(m.Outcome), m.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record mutation: %w", err)
	}
	return nil
}

// RecentMutations returns up to limit journal entries, newest first.
func (s *SQLiteStorage) RecentMutations(ctx context.Context, limit int) ([]Mutation, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, entity, action, record_id, inserted_count, updated_count, actor, outcome, created_at
		FROM mutations
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query mutations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Mutation
	for rows.Next() {
		var m Mutation
		var entity string
		var recordID, actor, outcome sql.NullString
		if err := rows.Scan(&m.ID, &entity, &m.Action, &recordID, &m.Inserted, &m.Updated, &actor, &outcome, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mutation: %w", err)
		}
		m.Entity = model.Entity(entity)
		m.RecordID = recordID.String
		m.Actor = actor.String
		m.Outcome = outcome.String
		out = append(out, m)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
