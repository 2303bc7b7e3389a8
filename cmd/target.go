package cmd

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/migward/migward/internal/iodb"
	"github.com/migward/migward/internal/iohistory"
	"github.com/migward/migward/internal/iopg"
	"github.com/migward/migward/internal/iosqlite"
	"github.com/migward/migward/pkg/dialect"
	"github.com/migward/migward/pkg/history"
)

// target bundles the per-driver collaborators of one database: the
// session the workflow runs on, the resolved schemas, and the history
// store.
type target struct {
	session dialect.Session
	schemas []dialect.Schema
	store   history.Store

	// pool is set for the postgres driver only
	pool *pgxpool.Pool

	close func()
}

// openTarget connects to the configured database and builds its
// collaborators. The caller must call close when done.
func openTarget(ctx context.Context) (*target, error) {
	if cfg.Database.Driver == "sqlite" {
		return openSqliteTarget(ctx)
	}
	return openPgTarget(ctx)
}

func openPgTarget(ctx context.Context) (*target, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}

	session, err := iopg.NewSession(ctx, op.Pool())
	if err != nil {
		op.Close()
		return nil, err
	}

	names := cfg.Clean.Schemas
	if len(names) == 0 {
		names = []string{"public"}
	}
	schemas := make([]dialect.Schema, len(names))
	for i, name := range names {
		schemas[i] = iopg.NewSchema(session, name)
	}

	store, err := iohistory.NewPgStore(
		op.Pool(), cfg.History.Table, cfg.Database.User)
	if err != nil {
		session.Release()
		op.Close()
		return nil, err
	}

	return &target{
		session: session,
		schemas: schemas,
		store:   store,
		pool:    op.Pool(),
		close: func() {
			session.Release()
			op.Close()
		},
	}, nil
}

func openSqliteTarget(ctx context.Context) (*target, error) {
	session, err := iosqlite.Open(ctx, cfg.Database.File)
	if err != nil {
		return nil, err
	}

	names := cfg.Clean.Schemas
	if len(names) == 0 {
		names = []string{"main"}
	}
	schemas := make([]dialect.Schema, len(names))
	for i, name := range names {
		schemas[i] = iosqlite.NewSchema(session, name)
	}

	store := iohistory.NewSqliteStore(
		session, cfg.History.Table, cfg.Database.User)

	return &target{
		session: session,
		schemas: schemas,
		store:   store,
		close:   func() { session.Close() },
	}, nil
}
