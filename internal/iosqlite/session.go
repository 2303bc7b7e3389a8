// Package iosqlite implements the dialect contracts for SQLite using
// the modernc.org/sqlite driver. SQLite has no per-session current
// schema, so ambient schema switching is a no-op, and schemas
// (attached databases) cannot be dropped with SQL, only cleaned.
package iosqlite

import (
	"context"
	"database/sql"

	"github.com/migward/migward/pkg/dialect"
	_ "modernc.org/sqlite"
)

// driverName is the name registered by modernc.org/sqlite.
const driverName = "sqlite"

// Session implements dialect.Session over one SQLite connection.
type Session struct {
	db   *sql.DB
	conn *sql.Conn

	// open transaction started by RunAtomic; statements issued through
	// the session are routed into it
	tx *sql.Tx
}

// Open opens the database file and pins one connection as the
// workflow's session. Close must be called when the workflow is done.
func Open(ctx context.Context, file string) (*Session, error) {
	db, err := sql.Open(driverName, file)
	if err != nil {
		return nil, OpenError(file, err)
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, OpenError(file, err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		db.Close()
		return nil, OpenError(file, err)
	}
	return &Session{db: db, conn: conn}, nil
}

// Close releases the pinned connection and the database handle.
func (s *Session) Close() error {
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ChangeCurrentSchema is a no-op: SQLite addresses schemas by prefix,
// there is no session-scoped current schema to change.
func (s *Session) ChangeCurrentSchema(
	_ context.Context, _ string,
) error {
	return nil
}

// RestoreCurrentSchema is a no-op for the same reason.
func (s *Session) RestoreCurrentSchema(_ context.Context) error {
	return nil
}

// RunAtomic executes fn in one transaction. Statements issued through
// Exec while fn runs are routed into the transaction.
func (s *Session) RunAtomic(
	ctx context.Context,
	fn dialect.UnitOfWork,
) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return TxError(err)
	}
	s.tx = tx
	defer func() { s.tx = nil }()

	if err := fn(ctx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return TxError(err)
	}
	return nil
}

// Exec runs a statement, inside the open transaction if there is one.
func (s *Session) Exec(
	ctx context.Context,
	query string,
	args ...any,
) error {
	if s.tx != nil {
		_, err := s.tx.ExecContext(ctx, query, args...)
		return err
	}
	_, err := s.conn.ExecContext(ctx, query, args...)
	return err
}

// Query routes reads the same way Exec routes writes.
func (s *Session) Query(
	ctx context.Context,
	query string,
	args ...any,
) (*sql.Rows, error) {
	if s.tx != nil {
		return s.tx.QueryContext(ctx, query, args...)
	}
	return s.conn.QueryContext(ctx, query, args...)
}
