package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/migward/migward/pkg/errcode"
)

// ConnectionError creates an error for database connection failures.
func ConnectionError(
	host string, port int, database, user string, err error,
) error {
	msg := `Could not connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Verify database exists:
     <em>psql -h %s -U %s -l</em>
  3. Check the configuration file:
     <em>~/.config/migward/config.yaml</em>`

	vars := []any{host, port, host, user}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}
