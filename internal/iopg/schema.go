package iopg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/jackc/pgx/v5"
	"github.com/migward/migward/pkg/dialect"
)

// schema implements dialect.Schema for one PostgreSQL schema. All
// statements go through the session's connection, so Clean and Drop
// join the transaction the workflow opened around them.
type schema struct {
	session *Session
	name    string
}

// NewSchema wraps one named schema of the connected database.
func NewSchema(session *Session, name string) dialect.Schema {
	return &schema{session: session, name: name}
}

func (s *schema) Name() string {
	return s.name
}

// Exists checks the schema live in the catalog, results are not cached.
func (s *schema) Exists(ctx context.Context) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.schemata
			WHERE schema_name = $1
		)
	`

	var exists bool
	err := s.session.conn.QueryRow(ctx, query, s.name).Scan(&exists)
	if err != nil {
		return false, ExistsCheckError(s.name, err)
	}

	return exists, nil
}

// Drop removes the schema and everything it contains.
func (s *schema) Drop(ctx context.Context) error {
	q := fmt.Sprintf("DROP SCHEMA %s CASCADE",
		pgx.Identifier{s.name}.Sanitize())
	if _, err := s.session.conn.Exec(ctx, q); err != nil {
		return DropError(s.name, err)
	}
	return nil
}

// Clean drops every object the schema contains but keeps the schema.
// Object kinds are removed in dependency-safe order: materialized
// views first, then views, tables, sequences, routines and enum types.
func (s *schema) Clean(ctx context.Context) error {
	var stmts []string

	for _, inv := range []func(context.Context) ([]string, error){
		s.dropMaterializedViewStatements,
		s.dropViewStatements,
		s.dropTableStatements,
		s.dropSequenceStatements,
		s.dropRoutineStatements,
		s.dropEnumTypeStatements,
	} {
		res, err := inv(ctx)
		if err != nil {
			return err
		}
		stmts = append(stmts, res...)
	}

	bar := newProgressBar(len(stmts), fmt.Sprintf("clean %s", s.name))
	defer bar.Finish()

	for _, stmt := range stmts {
		if _, err := s.session.conn.Exec(ctx, stmt); err != nil {
			return CleanError(s.name, err)
		}
		bar.Increment()
	}

	slog.Info("Removed all objects from schema",
		"schema", s.name,
		"objects", humanize.Comma(int64(len(stmts))),
	)
	return nil
}

func (s *schema) dropMaterializedViewStatements(
	ctx context.Context,
) ([]string, error) {
	query := `
		SELECT matviewname
		FROM pg_matviews
		WHERE schemaname = $1
	`
	return s.dropStatements(ctx, query,
		"DROP MATERIALIZED VIEW IF EXISTS %s CASCADE")
}

func (s *schema) dropViewStatements(
	ctx context.Context,
) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.views
		WHERE table_schema = $1
	`
	return s.dropStatements(ctx, query,
		"DROP VIEW IF EXISTS %s CASCADE")
}

func (s *schema) dropTableStatements(
	ctx context.Context,
) ([]string, error) {
	query := `
		SELECT tablename
		FROM pg_tables
		WHERE schemaname = $1
	`
	return s.dropStatements(ctx, query,
		"DROP TABLE IF EXISTS %s CASCADE")
}

func (s *schema) dropSequenceStatements(
	ctx context.Context,
) ([]string, error) {
	query := `
		SELECT sequence_name
		FROM information_schema.sequences
		WHERE sequence_schema = $1
	`
	return s.dropStatements(ctx, query,
		"DROP SEQUENCE IF EXISTS %s CASCADE")
}

func (s *schema) dropEnumTypeStatements(
	ctx context.Context,
) ([]string, error) {
	query := `
		SELECT t.typname
		FROM pg_type t
		JOIN pg_namespace n ON n.oid = t.typnamespace
		WHERE t.typtype = 'e' AND n.nspname = $1
	`
	return s.dropStatements(ctx, query,
		"DROP TYPE IF EXISTS %s CASCADE")
}

// dropStatements runs an object-name query and formats one drop
// statement per object, schema-qualified.
func (s *schema) dropStatements(
	ctx context.Context,
	query, tmpl string,
) ([]string, error) {
	rows, err := s.session.conn.Query(ctx, query, s.name)
	if err != nil {
		return nil, InventoryError(s.name, err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, InventoryError(s.name, err)
		}
		qualified := pgx.Identifier{s.name, name}.Sanitize()
		res = append(res, fmt.Sprintf(tmpl, qualified))
	}
	if err := rows.Err(); err != nil {
		return nil, InventoryError(s.name, err)
	}

	return res, nil
}

// dropRoutineStatements handles functions and procedures, which need
// their argument signature to be dropped unambiguously.
func (s *schema) dropRoutineStatements(
	ctx context.Context,
) ([]string, error) {
	// prokind is "char"; cast to text so pgx can scan it
	query := `
		SELECT p.oid::regprocedure::text, p.prokind::text
		FROM pg_proc p
		JOIN pg_namespace n ON n.oid = p.pronamespace
		WHERE n.nspname = $1 AND p.prokind IN ('f', 'p')
	`
	rows, err := s.session.conn.Query(ctx, query, s.name)
	if err != nil {
		return nil, InventoryError(s.name, err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var signature, kind string
		if err := rows.Scan(&signature, &kind); err != nil {
			return nil, InventoryError(s.name, err)
		}
		keyword := "FUNCTION"
		if kind == "p" {
			keyword = "PROCEDURE"
		}
		res = append(res, fmt.Sprintf(
			"DROP %s IF EXISTS %s CASCADE", keyword, signature))
	}
	if err := rows.Err(); err != nil {
		return nil, InventoryError(s.name, err)
	}

	return res, nil
}
