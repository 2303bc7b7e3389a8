package iosqlite

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/migward/migward/pkg/errcode"
)

// OpenError creates an error for a failed SQLite database open.
func OpenError(file string, err error) error {
	msg := `Cannot open SQLite database <em>%s</em>

<em>Possible causes:</em>
  - The file path does not exist or is not writable
  - The file is not a SQLite database

<em>How to fix:</em>
  1. Check 'database.file' in config.yaml
  2. Check file permissions`

	vars := []any{file}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open sqlite file %s: %w", file, err),
	}
}

// TxError creates an error for a failed transaction begin or commit.
func TxError(err error) error {
	msg := "Cannot run transaction on the SQLite database"

	return &gn.Error{
		Code: errcode.SessionTxError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("transaction failed: %w", err),
	}
}

// ExistsCheckError creates an error for a failed schema existence
// check.
func ExistsCheckError(schema string, err error) error {
	msg := `Cannot check whether schema <em>%s</em> exists`

	vars := []any{schema}

	return &gn.Error{
		Code: errcode.SchemaExistsCheckError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("cannot check existence of schema %s: %w",
			schema, err),
	}
}

// InventoryError creates an error for a failed object listing.
func InventoryError(schema string, err error) error {
	msg := `Cannot list objects of schema <em>%s</em>`

	vars := []any{schema}

	return &gn.Error{
		Code: errcode.SchemaInventoryError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("cannot list objects of schema %s: %w",
			schema, err),
	}
}

// CleanError creates an error for a failed object drop during clean.
func CleanError(schema string, err error) error {
	msg := `Cannot remove objects from schema <em>%s</em>`

	vars := []any{schema}

	return &gn.Error{
		Code: errcode.SchemaCleanError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot clean schema %s: %w", schema, err),
	}
}

// DropUnsupportedError creates an error for a drop request against an
// engine that cannot drop schemas.
func DropUnsupportedError(schema string) error {
	msg := `Cannot drop schema <em>%s</em>: SQLite does not support dropping schemas

<em>How to fix:</em>
  1. Remove the database file instead, or
  2. Run clean without the schemas marker to empty the schema`

	vars := []any{schema}

	return &gn.Error{
		Code: errcode.SchemaDropUnsupportedError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"sqlite cannot drop schema %s", schema),
	}
}
