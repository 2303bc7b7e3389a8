package iohooks

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/migward/migward/pkg/errcode"
)

// CallbackDirError creates an error for an unusable callbacks
// directory.
func CallbackDirError(dir string, err error) error {
	msg := `Cannot read callbacks directory <em>%s</em>

<em>How to fix:</em>
  1. Check 'callbacks.dir' in config.yaml
  2. Check the directory exists and is readable`

	vars := []any{dir}

	if err == nil {
		err = fmt.Errorf("not a directory")
	}

	return &gn.Error{
		Code: errcode.CallbackDirError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("cannot read callbacks dir %s: %w",
			dir, err),
	}
}

// CallbackScriptError creates an error for an unreadable callback
// script.
func CallbackScriptError(path string, err error) error {
	msg := `Cannot read callback script <em>%s</em>`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.CallbackScriptError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("cannot read callback script %s: %w",
			path, err),
	}
}
