package iosqlite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/migward/migward/pkg/dialect"
)

// schema implements dialect.Schema for one attached SQLite database
// ("main" unless the caller attached others).
type schema struct {
	session *Session
	name    string
}

// NewSchema wraps one attached database of the session.
func NewSchema(session *Session, name string) dialect.Schema {
	return &schema{session: session, name: name}
}

func (s *schema) Name() string {
	return s.name
}

// Exists checks the attached database list for the schema name.
func (s *schema) Exists(ctx context.Context) (bool, error) {
	rows, err := s.session.Query(ctx,
		"SELECT count(*) FROM pragma_database_list WHERE name = ?",
		s.name)
	if err != nil {
		return false, ExistsCheckError(s.name, err)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return false, ExistsCheckError(s.name, err)
		}
	}
	if err := rows.Err(); err != nil {
		return false, ExistsCheckError(s.name, err)
	}

	return count > 0, nil
}

// Drop is not available: SQLite cannot remove an attached database
// with SQL.
func (s *schema) Drop(_ context.Context) error {
	return DropUnsupportedError(s.name)
}

// Clean drops triggers, then views, then tables of the schema.
// Internal sqlite_ objects stay untouched.
func (s *schema) Clean(ctx context.Context) error {
	// FK checks move to commit time so table drop order cannot fail
	if err := s.session.Exec(ctx,
		"PRAGMA defer_foreign_keys = ON"); err != nil {
		return CleanError(s.name, err)
	}

	var total int
	for _, kind := range []string{"trigger", "view", "table"} {
		n, err := s.dropAll(ctx, kind)
		if err != nil {
			return err
		}
		total += n
	}

	slog.Info("Removed all objects from schema",
		"schema", s.name,
		"objects", humanize.Comma(int64(total)),
	)
	return nil
}

func (s *schema) dropAll(ctx context.Context, kind string) (int, error) {
	query := fmt.Sprintf(`
		SELECT name FROM %q.sqlite_master
		WHERE type = ? AND name NOT LIKE 'sqlite_%%'
	`, s.name)

	rows, err := s.session.Query(ctx, query, kind)
	if err != nil {
		return 0, InventoryError(s.name, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return 0, InventoryError(s.name, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return 0, InventoryError(s.name, err)
	}

	for _, name := range names {
		stmt := fmt.Sprintf("DROP %s %q.%q",
			keyword(kind), s.name, name)
		if err := s.session.Exec(ctx, stmt); err != nil {
			return 0, CleanError(s.name, err)
		}
	}

	return len(names), nil
}

func keyword(kind string) string {
	switch kind {
	case "trigger":
		return "TRIGGER"
	case "view":
		return "VIEW"
	default:
		return "TABLE"
	}
}
