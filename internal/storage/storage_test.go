package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/bednights/internal/common"
	"github.com/Veraticus/bednights/internal/model"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestMigrate_Idempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))
	version, err := store.schemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestNewSQLiteStorage_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.db")

	store, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.Equal(t, path, store.Path())
	assert.FileExists(t, path)

	_, err = NewSQLiteStorage(" ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestSnapshots(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	fetched := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	_, err := store.LoadSnapshot(ctx, model.EntityProperties)
	require.ErrorIs(t, err, common.ErrNotFound)

	records := []model.Record{{"id": "1", "name": "Pier", "bed_nights": 3.0, "is_active": true}}
	require.NoError(t, store.SaveSnapshot(ctx, model.EntityProperties, records, fetched))

	snap, err := store.LoadSnapshot(ctx, model.EntityProperties)
	require.NoError(t, err)
	assert.Equal(t, records, snap.Records)
	assert.True(t, fetched.Equal(snap.FetchedAt))

	require.NoError(t, store.SaveSnapshot(ctx, model.EntityProperties, nil, fetched.Add(time.Hour)))
	snap, err = store.LoadSnapshot(ctx, model.EntityProperties)
	require.NoError(t, err)
	assert.Empty(t, snap.Records)

	require.NoError(t, store.SaveSnapshot(ctx, model.EntityCountries, records, fetched))
	infos, err := store.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, model.EntityProperties, infos[0].Entity)
	assert.Equal(t, 1, infos[1].Count)

	require.NoError(t, store.DeleteSnapshots(ctx))
	infos, err = store.ListSnapshots(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestSnapshots_Validation(t *testing.T) {
	store := createTestStorage(t)

	err := store.SaveSnapshot(context.Background(), "planets", nil, time.Now())
	assert.ErrorIs(t, err, ErrInvalidEntity)

	//nolint:staticcheck // Testing nil context handling
	_, err = store.LoadSnapshot(nil, model.EntityCountries)
	assert.ErrorIs(t, err, ErrNilContext)
}

func TestMutations(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.RecordMutation(ctx, Mutation{
		Entity: model.EntityCountries, Action: ActionUpsert, Inserted: 1, Actor: "ops@example.com", CreatedAt: base,
	}))
	require.NoError(t, store.RecordMutation(ctx, Mutation{
		Entity: model.EntityProperties, Action: ActionDelete, RecordID: "9", Outcome: "conflict", CreatedAt: base.Add(time.Minute),
	}))

	got, err := store.RecentMutations(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ActionDelete, got[0].Action)
	assert.Equal(t, "9", got[0].RecordID)
	assert.Equal(t, "conflict", got[0].Outcome)
	assert.Equal(t, "ops@example.com", got[1].Actor)
	assert.Equal(t, 1, got[1].Inserted)

	got, err = store.RecentMutations(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = store.RecentMutations(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidLimit)

	err = store.RecordMutation(ctx, Mutation{Entity: model.EntityCountries, Action: "rename"})
	assert.ErrorIs(t, err, ErrInvalidAction)
}
