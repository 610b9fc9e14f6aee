package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/bednights/internal/common"
	"github.com/Veraticus/bednights/internal/forms"
	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/pages"
	"github.com/Veraticus/bednights/internal/storage"
)

// Journal outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeConflict = "conflict"
	OutcomeFailed   = "failed"
)

// Mutator validates submissions, sends them to the API and journals the result.
type Mutator struct {
	writer  RecordWriter
	journal MutationJournal
	actor   string
	now     func() time.Time
}

// NewMutator creates a mutator. journal may be nil.
func NewMutator(writer RecordWriter, journal MutationJournal, actor string) *Mutator {
	return &Mutator{writer: writer, journal: journal, actor: actor, now: time.Now}
}

// Save validates rec against the page form and upserts it.
func (m *Mutator) Save(ctx context.Context, page pages.Page, rec model.Record) (model.MutationResult, error) {
	if page.ReadOnly() {
		return model.MutationResult{}, fmt.Errorf("%s is read-only: %w", page.Title(), common.ErrForbidden)
	}
	if err := forms.Validate(page, rec); err != nil {
		return model.MutationResult{}, err
	}
	rec = forms.Coerce(page, rec)

	res, err := m.writer.Upsert(ctx, page.Entity, []model.Record{rec})
	m.record(ctx, storage.Mutation{
		Entity:   page.Entity,
		Action:   storage.ActionUpsert,
		RecordID: rec.ID(),
		Inserted: res.InsertedCount,
		Updated:  res.UpdatedCount,
	}, err)
	return res, err
}

// Delete removes the record with id. A conflict error lists the dependent logs.
func (m *Mutator) Delete(ctx context.Context, entity model.Entity, id string) (model.MutationResult, error) {
	res, err := m.writer.Delete(ctx, entity, id)
	m.record(ctx, storage.Mutation{
		Entity:   entity,
		Action:   storage.ActionDelete,
		RecordID: id,
	}, err)
	return res, err
}

func (m *Mutator) record(ctx context.Context, entry storage.Mutation, err error) {
	entry.Actor = m.actor
	entry.CreatedAt = m.now()
	switch {
	case err == nil:
		entry.Outcome = OutcomeOK
	case errors.Is(err, common.ErrConflict):
		entry.Outcome = OutcomeConflict
	default:
		entry.Outcome = OutcomeFailed
	}

	slog.Info("Mutation sent",
		"entity", entry.Entity,
		"action", entry.Action,
		"record_id", entry.RecordID,
		"outcome", entry.Outcome)

	if m.journal == nil {
		return
	}
	if jerr := m.journal.RecordMutation(ctx, entry); jerr != nil {
		common.LogError(jerr, "Failed to journal mutation", common.Fields{"entity": entry.Entity})
	}
}

// Merge overlays changes onto the record with the same id in existing. A
// changes record without an id, or whose id is not found, is returned as is.
func Merge(existing []model.Record, changes model.Record) model.Record {
	id := changes.ID()
	if id == "" {
		return changes
	}
	for _, rec := range existing {
		if rec.ID() != id {
			continue
		}
		out := rec.Clone()
		for k, v := range changes {
			out[k] = v
		}
		return out
	}
	return changes
}
