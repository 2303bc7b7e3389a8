// Package iohooks loads lifecycle callbacks from SQL scripts. A
// directory with beforeClean.sql or afterClean.sql yields a callback
// whose edges execute those scripts on the workflow's session.
package iohooks

import (
	"context"
	"os"
	"path/filepath"

	"github.com/migward/migward/pkg/dialect"
	"github.com/migward/migward/pkg/lifecycle"
)

const (
	beforeCleanScript = "beforeClean.sql"
	afterCleanScript  = "afterClean.sql"
)

// scriptCallback runs the SQL scripts found in one directory. A
// missing script makes that edge a no-op.
type scriptCallback struct {
	name   string
	before string
	after  string
}

// FromDir scans dir for clean callback scripts. An empty dir name or a
// directory without scripts yields no callbacks.
func FromDir(dir string) ([]lifecycle.Callback, error) {
	if dir == "" {
		return nil, nil
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, CallbackDirError(dir, err)
	}

	before, err := readScript(filepath.Join(dir, beforeCleanScript))
	if err != nil {
		return nil, err
	}
	after, err := readScript(filepath.Join(dir, afterCleanScript))
	if err != nil {
		return nil, err
	}

	if before == "" && after == "" {
		return nil, nil
	}

	cb := &scriptCallback{
		name:   filepath.Base(dir),
		before: before,
		after:  after,
	}
	return []lifecycle.Callback{cb}, nil
}

func readScript(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", CallbackScriptError(path, err)
	}
	return string(data), nil
}

func (c *scriptCallback) Name() string {
	return c.name
}

func (c *scriptCallback) BeforeClean(
	ctx context.Context,
	session dialect.Session,
) error {
	return c.run(ctx, session, c.before)
}

func (c *scriptCallback) AfterClean(
	ctx context.Context,
	session dialect.Session,
) error {
	return c.run(ctx, session, c.after)
}

func (c *scriptCallback) run(
	ctx context.Context,
	session dialect.Session,
	script string,
) error {
	if script == "" {
		return nil
	}
	return session.Exec(ctx, script)
}
