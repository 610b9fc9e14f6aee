// Package service defines the contracts between the console and its data
// sources, and the loader that keeps views usable when the API fails.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/bednights/internal/export"
	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/storage"
)

// RecordSource lists entity collections.
type RecordSource interface {
	List(ctx context.Context, entity model.Entity) ([]model.Record, error)
}

// RecordWriter sends mutations to the API.
type RecordWriter interface {
	Upsert(ctx context.Context, entity model.Entity, records []model.Record) (model.MutationResult, error)
	Delete(ctx context.Context, entity model.Entity, id string) (model.MutationResult, error)
}

// Backend is the full API surface used by the dashboard.
type Backend interface {
	RecordSource
	RecordWriter
	Invalidate()
}

// SnapshotStore persists the last good collection of each entity.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, entity model.Entity, records []model.Record, fetchedAt time.Time) error
	LoadSnapshot(ctx context.Context, entity model.Entity) (storage.Snapshot, error)
}

// MutationJournal records mutations sent to the API.
type MutationJournal interface {
	RecordMutation(ctx context.Context, m storage.Mutation) error
}

// ReportWriter publishes exported tabs somewhere outside the console and
// returns where they went.
type ReportWriter interface {
	Write(ctx context.Context, tabs []export.Tab) (string, error)
}
