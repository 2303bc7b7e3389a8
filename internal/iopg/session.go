// Package iopg implements the dialect contracts for PostgreSQL. The
// whole clean workflow runs on one dedicated connection because the
// ambient schema (search_path) is per-connection state.
package iopg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/migward/migward/pkg/dialect"
)

// Session implements dialect.Session over a single pooled connection.
type Session struct {
	conn *pgxpool.Conn

	// search_path captured on the first ChangeCurrentSchema call
	original string
	switched bool
}

// NewSession acquires one connection from the pool and wraps it as a
// Session. Release must be called when the workflow is done.
func NewSession(
	ctx context.Context,
	pool *pgxpool.Pool,
) (*Session, error) {
	if pool == nil {
		return nil, NotConnectedError()
	}
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, AcquireSessionError(err)
	}
	return &Session{conn: conn}, nil
}

// Release returns the connection to the pool.
func (s *Session) Release() {
	if s.conn != nil {
		s.conn.Release()
		s.conn = nil
	}
}

// ChangeCurrentSchema switches search_path to the given schema. The
// current search_path is captured before the first switch.
func (s *Session) ChangeCurrentSchema(
	ctx context.Context,
	schema string,
) error {
	if !s.switched {
		row := s.conn.QueryRow(ctx, "SHOW search_path")
		if err := row.Scan(&s.original); err != nil {
			return SwitchSchemaError(schema, err)
		}
		s.switched = true
	}

	q := fmt.Sprintf("SET search_path TO %s",
		pgx.Identifier{schema}.Sanitize())
	if _, err := s.conn.Exec(ctx, q); err != nil {
		return SwitchSchemaError(schema, err)
	}
	return nil
}

// RestoreCurrentSchema puts search_path back to the value captured at
// the first switch. No-op when the schema was never changed.
func (s *Session) RestoreCurrentSchema(ctx context.Context) error {
	if !s.switched {
		return nil
	}

	q := restoreStatement(s.original)
	if _, err := s.conn.Exec(ctx, q); err != nil {
		return RestoreSchemaError(s.original, err)
	}
	s.switched = false
	return nil
}

// restoreStatement builds the SET statement for a captured search_path.
// SHOW search_path returns a valid comma-separated list which can be
// fed back into SET as is, except for the empty capture, where a bare
// SET would be a syntax error.
func restoreStatement(original string) string {
	if original == "" {
		return "SET search_path TO ''"
	}
	return fmt.Sprintf("SET search_path TO %s", original)
}

// RunAtomic executes fn inside one transaction on the session's
// connection. Statements issued through the session while the
// transaction is open join it.
func (s *Session) RunAtomic(
	ctx context.Context,
	fn dialect.UnitOfWork,
) error {
	return pgx.BeginFunc(ctx, s.conn, func(pgx.Tx) error {
		return fn(ctx)
	})
}

// Exec runs a statement on the session's connection.
func (s *Session) Exec(
	ctx context.Context,
	sql string,
	args ...any,
) error {
	_, err := s.conn.Exec(ctx, sql, args...)
	return err
}

// QueryRow runs a single-row query on the session's connection.
func (s *Session) QueryRow(
	ctx context.Context,
	sql string,
	args ...any,
) pgx.Row {
	return s.conn.QueryRow(ctx, sql, args...)
}
