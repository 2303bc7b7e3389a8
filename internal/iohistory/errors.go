package iohistory

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/migward/migward/pkg/errcode"
)

// NotConnectedError creates an error for when a store is requested
// without database connection.
func NotConnectedError() error {
	msg := "History store requested without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for GORM connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>Possible causes:</em>
  - Connection pool not initialized
  - Database configuration issue

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database configuration`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// QueryError creates an error for failed history table reads.
func QueryError(table string, err error) error {
	msg := `Cannot read schema-history table <em>%s</em>

<em>Possible causes:</em>
  - The table has an incompatible structure
  - Insufficient database permissions

<em>How to fix:</em>
  1. Check 'history.table' in config.yaml
  2. Inspect the table structure in the database`

	vars := []any{table}

	return &gn.Error{
		Code: errcode.HistoryQueryError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("cannot query history table %s: %w",
			table, err),
	}
}

// BaselineError creates an error for failed baseline writes.
func BaselineError(table string, err error) error {
	msg := `Cannot record baseline in <em>%s</em>

<em>Possible causes:</em>
  - Insufficient database permissions
  - The table has an incompatible structure`

	vars := []any{table}

	return &gn.Error{
		Code: errcode.HistoryBaselineError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("cannot baseline history table %s: %w",
			table, err),
	}
}

// AlreadyBaselinedError creates an error for a repeated baseline.
func AlreadyBaselinedError(table, version string) error {
	msg := `Schema-history table <em>%s</em> already carries a baseline (version %s)

<em>How to fix:</em>
  1. Drop the history table to re-baseline, or
  2. leave the existing baseline in place`

	vars := []any{table, version}

	return &gn.Error{
		Code: errcode.HistoryBaselineError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"history table %s is already baselined with version %s",
			table, version),
	}
}
