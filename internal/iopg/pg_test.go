package iopg_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/migward/migward/internal/iodb"
	"github.com/migward/migward/internal/iopg"
	"github.com/migward/migward/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: These are integration tests that require PostgreSQL.
// See internal/iodb/operator_test.go for setup instructions.

const testSchema = "migward_pg_test"

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	op := iodb.NewPgxOperator()
	err := op.Connect(context.Background(),
		iotesting.GetTestDatabaseConfig())
	require.NoError(t, err)
	t.Cleanup(func() { op.Close() })

	return op.Pool()
}

func newTestSession(t *testing.T, pool *pgxpool.Pool) *iopg.Session {
	t.Helper()

	session, err := iopg.NewSession(context.Background(), pool)
	require.NoError(t, err)
	t.Cleanup(session.Release)

	return session
}

// createTestSchema provisions a scratch schema with a few objects and
// removes it when the test finishes.
func createTestSchema(
	t *testing.T,
	ctx context.Context,
	pool *pgxpool.Pool,
) {
	t.Helper()

	// one object of every kind the clean inventory covers: table,
	// view, materialized view, standalone sequence, function,
	// procedure, enum type
	stmts := []string{
		fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", testSchema),
		fmt.Sprintf("CREATE SCHEMA %s", testSchema),
		fmt.Sprintf("CREATE TABLE %s.items (id serial PRIMARY KEY, name text)",
			testSchema),
		fmt.Sprintf("CREATE VIEW %s.item_names AS SELECT name FROM %s.items",
			testSchema, testSchema),
		fmt.Sprintf(
			"CREATE MATERIALIZED VIEW %s.item_count AS SELECT count(*) FROM %s.items",
			testSchema, testSchema),
		fmt.Sprintf("CREATE SEQUENCE %s.ticket_seq", testSchema),
		fmt.Sprintf(`CREATE FUNCTION %s.item_total() RETURNS bigint AS
			'SELECT count(*) FROM %s.items' LANGUAGE sql`,
			testSchema, testSchema),
		fmt.Sprintf(`CREATE PROCEDURE %s.reset_items() AS
			'DELETE FROM %s.items' LANGUAGE sql`,
			testSchema, testSchema),
		fmt.Sprintf("CREATE TYPE %s.mood AS ENUM ('ok', 'meh')", testSchema),
	}
	for _, stmt := range stmts {
		_, err := pool.Exec(ctx, stmt)
		require.NoError(t, err)
	}

	t.Cleanup(func() {
		pool.Exec(context.Background(),
			fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", testSchema))
	})
}

func TestSession_SwitchAndRestore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pool := newTestPool(t)
	createTestSchema(t, ctx, pool)
	session := newTestSession(t, pool)

	var before string
	require.NoError(t,
		pool.QueryRow(ctx, "SHOW search_path").Scan(&before))

	require.NoError(t, session.ChangeCurrentSchema(ctx, testSchema))

	// the session sees the switched path, the pool does not
	var current string
	err := session.QueryRow(ctx, "SHOW search_path").Scan(&current)
	require.NoError(t, err)
	assert.Contains(t, current, testSchema)

	require.NoError(t, session.RestoreCurrentSchema(ctx))
	err = session.QueryRow(ctx, "SHOW search_path").Scan(&current)
	require.NoError(t, err)
	assert.Equal(t, before, current)
}

func TestSchema_ExistsCleanDrop(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pool := newTestPool(t)
	createTestSchema(t, ctx, pool)
	session := newTestSession(t, pool)

	sch := iopg.NewSchema(session, testSchema)

	exists, err := sch.Exists(ctx)
	require.NoError(t, err)
	require.True(t, exists)

	// every inventory kind is represented: table, view, matview,
	// sequences (standalone + serial-owned), function, procedure, enum
	stats, err := iopg.CollectStats(ctx, pool, []string{testSchema})
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, int64(8), stats[0].Objects)

	err = session.RunAtomic(ctx, func(ctx context.Context) error {
		return sch.Clean(ctx)
	})
	require.NoError(t, err)

	stats, err = iopg.CollectStats(ctx, pool, []string{testSchema})
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.True(t, stats[0].Exists, "clean should keep the schema")
	assert.Zero(t, stats[0].Objects, "clean should empty the schema")

	err = session.RunAtomic(ctx, func(ctx context.Context) error {
		return sch.Drop(ctx)
	})
	require.NoError(t, err)

	exists, err = sch.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists, "drop should remove the schema")
}

func TestCollectStats_MissingSchema(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pool := newTestPool(t)

	stats, err := iopg.CollectStats(ctx, pool,
		[]string{"no_such_schema_here"})
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.False(t, stats[0].Exists)
	assert.Zero(t, stats[0].Objects)
}
