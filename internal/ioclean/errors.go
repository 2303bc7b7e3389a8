package ioclean

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/migward/migward/pkg/errcode"
)

// CleanDisabledError creates an error for when the clean workflow is
// invoked while disabled via configuration.
func CleanDisabledError() error {
	msg := `Unable to execute clean as it has been disabled

<em>How to fix:</em>
  1. Set 'clean.disabled: false' in config.yaml, or
  2. Set MIGWARD_CLEAN_DISABLED=false

Keep clean disabled for databases you cannot afford to lose.`

	return &gn.Error{
		Code: errcode.CleanDisabledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("clean is disabled"),
	}
}

// HookError creates an error for a failed lifecycle callback.
func HookError(name, phase string, position int, err error) error {
	msg := `Callback <em>%s</em> failed during %s

<em>Possible causes:</em>
  - The callback's SQL script has an error
  - The callback requires objects that are already gone

<em>How to fix:</em>
  1. Check the callback script for the failing phase
  2. Review database logs for details`

	vars := []any{name, phase}

	return &gn.Error{
		Code: errcode.CleanHookError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("callback %q (position %d) failed in %s: %w",
			name, position, phase, err),
	}
}

// SchemaExistsCheckError creates an error for a failed schema
// existence check.
func SchemaExistsCheckError(schema string, err error) error {
	msg := `Cannot check whether schema <em>%s</em> exists

<em>Possible causes:</em>
  - Connection to the database was lost
  - Insufficient database permissions

<em>How to fix:</em>
  1. Verify the database connection settings
  2. Check the database user can read catalog tables`

	vars := []any{schema}

	return &gn.Error{
		Code: errcode.SchemaExistsCheckError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("cannot check existence of schema %s: %w",
			schema, err),
	}
}

// SchemaCleanError creates an error for a failed schema clean.
func SchemaCleanError(schema string, err error) error {
	msg := `Cannot clean schema <em>%s</em>

<em>Possible causes:</em>
  - Objects are locked by other sessions
  - Insufficient database permissions
  - Objects owned by other users

<em>How to fix:</em>
  1. Close other sessions using the schema
  2. Check the database user can drop the schema's objects`

	vars := []any{schema}

	return &gn.Error{
		Code: errcode.SchemaCleanError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot clean schema %s: %w", schema, err),
	}
}

// SchemaDropError creates an error for a failed schema drop.
func SchemaDropError(schema string, err error) error {
	msg := `Cannot drop schema <em>%s</em>

<em>Possible causes:</em>
  - Objects are locked by other sessions
  - Insufficient database permissions
  - The engine does not support dropping schemas

<em>How to fix:</em>
  1. Close other sessions using the schema
  2. Check the database user owns the schema`

	vars := []any{schema}

	return &gn.Error{
		Code: errcode.SchemaDropError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot drop schema %s: %w", schema, err),
	}
}
