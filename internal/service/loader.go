package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Veraticus/bednights/internal/common"
	"github.com/Veraticus/bednights/internal/model"
)

// LoadResult is what a view receives after a fetch. Err is informational: the
// records are always usable, possibly stale or empty.
type LoadResult struct {
	FetchedAt time.Time
	Err       error
	Entity    model.Entity
	Records   []model.Record
	Stale     bool
}

// Degraded reports whether the fetch failed.
func (r LoadResult) Degraded() bool {
	return r.Err != nil
}

// Loader fetches collections and falls back to the last snapshot, or to an
// empty collection, when the source fails.
type Loader struct {
	source    RecordSource
	snapshots SnapshotStore
	now       func() time.Time
}

// NewLoader creates a loader. snapshots may be nil.
func NewLoader(source RecordSource, snapshots SnapshotStore) *Loader {
	return &Loader{source: source, snapshots: snapshots, now: time.Now}
}

// Load fetches an entity's records.
func (l *Loader) Load(ctx context.Context, entity model.Entity) LoadResult {
	records, err := l.source.List(ctx, entity)
	if err == nil {
		fetchedAt := l.now()
		if records == nil {
			records = []model.Record{}
		}
		if l.snapshots != nil {
			if serr := l.snapshots.SaveSnapshot(ctx, entity, records, fetchedAt); serr != nil {
				common.LogError(serr, "Failed to save snapshot", common.Fields{"entity": entity})
			}
		}
		return LoadResult{Entity: entity, Records: records, FetchedAt: fetchedAt}
	}

	slog.Warn("Failed to load records", "entity", entity, "error", err)
	result := LoadResult{Entity: entity, Records: []model.Record{}, Err: err}

	if l.snapshots == nil {
		return result
	}
	snap, serr := l.snapshots.LoadSnapshot(ctx, entity)
	switch {
	case serr == nil:
		slog.Info("Serving stale snapshot", "entity", entity, "fetched_at", snap.FetchedAt, "count", len(snap.Records))
		result.Records = snap.Records
		result.FetchedAt = snap.FetchedAt
		result.Stale = true
	case !errors.Is(serr, common.ErrNotFound):
		common.LogError(serr, "Failed to load snapshot", common.Fields{"entity": entity})
	}
	return result
}

// LoadAll loads several entities in order.
func (l *Loader) LoadAll(ctx context.Context, entities []model.Entity, progress func(LoadResult)) []LoadResult {
	out := make([]LoadResult, 0, len(entities))
	for _, e := range entities {
		r := l.Load(ctx, e)
		if progress != nil {
			progress(r)
		}
		out = append(out, r)
	}
	return out
}
