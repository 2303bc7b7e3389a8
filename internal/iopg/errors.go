package iopg

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/migward/migward/pkg/errcode"
)

// NotConnectedError creates an error for when a session is requested
// without a database connection.
func NotConnectedError() error {
	msg := "Session requested without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// AcquireSessionError creates an error for a failed connection
// acquisition from the pool.
func AcquireSessionError(err error) error {
	msg := `Cannot acquire a dedicated database connection

<em>Possible causes:</em>
  - The connection pool is exhausted
  - The database stopped accepting connections

<em>How to fix:</em>
  1. Check PostgreSQL is still running
  2. Raise 'database.max_connections' in config.yaml`

	return &gn.Error{
		Code: errcode.SessionAcquireError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("cannot acquire connection: %w", err),
	}
}

// SwitchSchemaError creates an error for a failed search_path change.
func SwitchSchemaError(schema string, err error) error {
	msg := `Cannot switch current schema to <em>%s</em>

<em>Possible causes:</em>
  - Connection to the database was lost
  - The schema name is not valid

<em>How to fix:</em>
  1. Verify the schema names in 'clean.schemas'
  2. Check database logs for details`

	vars := []any{schema}

	return &gn.Error{
		Code: errcode.SessionSwitchError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("cannot set search_path to %s: %w",
			schema, err),
	}
}

// RestoreSchemaError creates an error for a failed search_path
// restore.
func RestoreSchemaError(searchPath string, err error) error {
	msg := `Cannot restore the session's original schema

The connection may carry a wrong search_path after this failure.

<em>How to fix:</em>
  1. Close the connection instead of reusing it
  2. Check database logs for details`

	return &gn.Error{
		Code: errcode.SessionRestoreError,
		Msg:  msg,
		Vars: nil,
		Err: fmt.Errorf("cannot restore search_path to %s: %w",
			searchPath, err),
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

// InventoryError creates an error for a failed schema object listing.
func InventoryError(schema string, err error) error {
	msg := `Cannot list objects of schema <em>%s</em>

<em>Possible causes:</em>
  - Insufficient permissions on catalog tables
  - Connection to the database was lost`

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
	msg := `Cannot remove objects from schema <em>%s</em>

<em>Possible causes:</em>
  - Objects are locked by other sessions
  - Objects owned by other users

<em>How to fix:</em>
  1. Close other sessions using the schema
  2. Check the database user can drop the schema's objects`

	vars := []any{schema}

	return &gn.Error{
		Code: errcode.SchemaCleanError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("cannot clean schema %s: %w", schema, err),
	}
}

// DropError creates an error for a failed schema drop.
func DropError(schema string, err error) error {
	msg := `Cannot drop schema <em>%s</em>

<em>Possible causes:</em>
  - Objects are locked by other sessions
  - The database user does not own the schema`

	vars := []any{schema}

	return &gn.Error{
		Code: errcode.SchemaDropError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("cannot drop schema %s: %w", schema, err),
	}
}
