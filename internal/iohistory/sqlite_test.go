package iohistory_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/migward/migward/internal/iohistory"
	"github.com/migward/migward/internal/iosqlite"
	"github.com/migward/migward/pkg/errcode"
	"github.com/migward/migward/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (history.Store, *iosqlite.Session) {
	t.Helper()

	file := filepath.Join(t.TempDir(), "history.db")
	session, err := iosqlite.Open(context.Background(), file)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })

	store := iohistory.NewSqliteStore(session, "schema_history", "tester")
	return store, session
}

func TestSqliteStoreExists(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	t.Run("missing table", func(t *testing.T) {
		exists, err := store.Exists(ctx)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("after baseline", func(t *testing.T) {
		require.NoError(t, store.Baseline(ctx, "1", "<< Baseline >>"))

		exists, err := store.Exists(ctx)
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestSqliteStoreApplied(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	t.Run("missing table yields no rows", func(t *testing.T) {
		rows, err := store.Applied(ctx)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("baseline row is returned", func(t *testing.T) {
		store.ClearCache()
		require.NoError(t, store.Baseline(ctx, "3", "prod state"))

		rows, err := store.Applied(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)

		row := rows[0]
		assert.Equal(t, 1, row.InstalledRank)
		assert.Equal(t, "3", row.Version)
		assert.Equal(t, "prod state", row.Description)
		assert.Equal(t, history.TypeBaseline, row.Type)
		assert.Equal(t, "tester", row.InstalledBy)
		assert.False(t, row.InstalledOn.IsZero())
		assert.True(t, row.Success)
	})
}

func TestSqliteStoreBaselineTwice(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	require.NoError(t, store.Baseline(ctx, "1", "<< Baseline >>"))

	err := store.Baseline(ctx, "2", "again")
	require.Error(t, err)

	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.HistoryBaselineError, gnErr.Code)
}

func TestSqliteStoreHasSchemasMarker(t *testing.T) {
	ctx := context.Background()
	store, session := newTestStore(t)

	t.Run("no marker without table", func(t *testing.T) {
		marker, err := store.HasSchemasMarker(ctx)
		require.NoError(t, err)
		assert.False(t, marker)
	})

	t.Run("no marker with baseline only", func(t *testing.T) {
		store.ClearCache()
		require.NoError(t, store.Baseline(ctx, "1", "<< Baseline >>"))

		marker, err := store.HasSchemasMarker(ctx)
		require.NoError(t, err)
		assert.False(t, marker)
	})

	t.Run("marker row detected", func(t *testing.T) {
		err := session.Exec(ctx, `
			INSERT INTO "schema_history" (installed_rank, version,
				description, type, script, checksum, installed_by,
				installed_on, execution_time, success)
			VALUES (2, NULL, '<< Schema Creation >>', 'SCHEMA',
				'<< Schema Creation >>', NULL, 'tester',
				'2026-01-02T15:04:05Z', 0, true)
		`)
		require.NoError(t, err)

		store.ClearCache()
		marker, err := store.HasSchemasMarker(ctx)
		require.NoError(t, err)
		assert.True(t, marker)
	})
}

func TestSqliteStoreCache(t *testing.T) {
	ctx := context.Background()
	store, session := newTestStore(t)

	require.NoError(t, store.Baseline(ctx, "1", "<< Baseline >>"))

	rows, err := store.Applied(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// rows added behind the cache are invisible until ClearCache
	err = session.Exec(ctx, `
		INSERT INTO "schema_history" (installed_rank, version,
			description, type, script, checksum, installed_by,
			installed_on, execution_time, success)
		VALUES (2, '2', 'add tables', 'SQL', 'V2__add_tables.sql',
			NULL, 'tester', '2026-01-02T15:04:05Z', 12, true)
	`)
	require.NoError(t, err)

	rows, err = store.Applied(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "cached result should be served")

	store.ClearCache()
	rows, err = store.Applied(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2, "cache reset should reload the table")
}
