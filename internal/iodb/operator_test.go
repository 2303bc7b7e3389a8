package iodb_test

import (
	"context"
	"testing"

	"github.com/migward/migward/internal/iodb"
	"github.com/migward/migward/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: These are integration tests that require PostgreSQL.
//
// Configuration comes from MIGWARD_DATABASE_* environment variables
// with postgres/postgres defaults. The database name is always forced
// to "migward_test" for safety.
//
// Start a throwaway server with:
//   docker run -d --name migward-test -e POSTGRES_PASSWORD=postgres \
//     -p 5432:5432 postgres:16
//   createdb migward_test
//
// Skip these tests in CI without a database using:
//   go test -short

func TestPgxOperator_Connect(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()

	err := op.Connect(ctx, iotesting.GetTestDatabaseConfig())
	require.NoError(t, err, "Connect should succeed with valid config")
	defer op.Close()

	require.NotNil(t, op.Pool())

	// Verify the pool works with a trivial query
	var one int
	err = op.Pool().QueryRow(ctx, "SELECT 1").Scan(&one)
	assert.NoError(t, err, "Should be able to query after Connect")
	assert.Equal(t, 1, one)
}

func TestPgxOperator_Connect_InvalidHost(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()

	cfg := iotesting.GetTestDatabaseConfig()
	cfg.Host = "invalid-host-that-does-not-exist"

	err := op.Connect(ctx, cfg)
	assert.Error(t, err, "Connect should fail with invalid host")
}

func TestPgxOperator_CloseWithoutConnect(t *testing.T) {
	op := iodb.NewPgxOperator()
	assert.NoError(t, op.Close(),
		"Close should be safe before Connect")
	assert.Nil(t, op.Pool())
}
