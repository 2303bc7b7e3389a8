package iohooks_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/migward/migward/internal/iohooks"
	"github.com/migward/migward/pkg/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execSession struct {
	statements []string
}

func (s *execSession) ChangeCurrentSchema(
	_ context.Context, _ string,
) error {
	return nil
}

func (s *execSession) RestoreCurrentSchema(_ context.Context) error {
	return nil
}

func (s *execSession) RunAtomic(
	ctx context.Context, fn dialect.UnitOfWork,
) error {
	return fn(ctx)
}

func (s *execSession) Exec(
	_ context.Context, sql string, _ ...any,
) error {
	s.statements = append(s.statements, sql)
	return nil
}

func writeScript(t *testing.T, dir, name, sql string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(sql), 0644)
	require.NoError(t, err)
}

func TestFromDir_EmptyDirName(t *testing.T) {
	callbacks, err := iohooks.FromDir("")
	require.NoError(t, err)
	assert.Empty(t, callbacks)
}

func TestFromDir_MissingDir(t *testing.T) {
	_, err := iohooks.FromDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestFromDir_NoScripts(t *testing.T) {
	callbacks, err := iohooks.FromDir(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, callbacks,
		"a directory without scripts yields no callbacks")
}

func TestFromDir_BothEdges(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "beforeClean.sql",
		"INSERT INTO audit (event) VALUES ('before')")
	writeScript(t, dir, "afterClean.sql",
		"INSERT INTO audit (event) VALUES ('after')")

	callbacks, err := iohooks.FromDir(dir)
	require.NoError(t, err)
	require.Len(t, callbacks, 1)
	assert.Equal(t, filepath.Base(dir), callbacks[0].Name())

	sess := &execSession{}
	ctx := context.Background()

	require.NoError(t, callbacks[0].BeforeClean(ctx, sess))
	require.NoError(t, callbacks[0].AfterClean(ctx, sess))

	require.Len(t, sess.statements, 2)
	assert.Contains(t, sess.statements[0], "before")
	assert.Contains(t, sess.statements[1], "after")
}

func TestFromDir_OneEdgeIsNoOp(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "beforeClean.sql", "SELECT 1")

	callbacks, err := iohooks.FromDir(dir)
	require.NoError(t, err)
	require.Len(t, callbacks, 1)

	sess := &execSession{}
	ctx := context.Background()

	require.NoError(t, callbacks[0].BeforeClean(ctx, sess))
	require.NoError(t, callbacks[0].AfterClean(ctx, sess))

	assert.Len(t, sess.statements, 1,
		"the missing afterClean script is a no-op")
}
