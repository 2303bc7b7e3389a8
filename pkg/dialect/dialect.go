// Package dialect defines the contracts a database engine must satisfy
// for migward to manage its schemas. Implementations live in internal
// (iopg for PostgreSQL, iosqlite for SQLite).
package dialect

import (
	"context"
)

// UnitOfWork is a closure executed atomically by Session.RunAtomic.
type UnitOfWork func(ctx context.Context) error

// Session wraps one live database connection. The clean workflow owns
// the session for its whole run; ambient schema changes made through it
// are visible to every statement executed on the same session.
type Session interface {
	// ChangeCurrentSchema switches the session's ambient schema.
	// The pre-change value is captured on the first switch so
	// RestoreCurrentSchema can bring it back.
	ChangeCurrentSchema(ctx context.Context, schema string) error

	// RestoreCurrentSchema restores the ambient schema to the value
	// captured at the first ChangeCurrentSchema call. It is a no-op if
	// the schema was never changed.
	RestoreCurrentSchema(ctx context.Context) error

	// RunAtomic executes fn as a single transaction on this session.
	// fn must not commit or roll back on its own.
	RunAtomic(ctx context.Context, fn UnitOfWork) error

	// Exec runs a statement on the session's connection. Inside
	// RunAtomic the statement joins the open transaction.
	Exec(ctx context.Context, sql string, args ...any) error
}

// SchemaStats describes one schema for status reporting.
type SchemaStats struct {
	Name    string `yaml:"name"`
	Exists  bool   `yaml:"exists"`
	Objects int64  `yaml:"objects"`
}

// Schema represents one named schema of the managed database.
type Schema interface {
	// Name returns the schema name as supplied by configuration.
	Name() string

	// Exists reports whether the schema is present in the database.
	// The check is live, results are never cached.
	Exists(ctx context.Context) (bool, error)

	// Clean removes all objects the schema contains but keeps the
	// schema itself.
	Clean(ctx context.Context) error

	// Drop removes the schema together with all its contents. Engines
	// without droppable schemas return an error instead.
	Drop(ctx context.Context) error
}
