package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryCanHandle(t *testing.T) {
	env, _ := newTestEnv()
	h := NewDirectoryHandler(nil, env)

	dir := t.TempDir()
	assert.True(t, h.CanHandle(dir, mustStat(t, dir)))

	file := writeTemp(t, "plain.txt", "content")
	assert.False(t, h.CanHandle(file, mustStat(t, file)))
}

func TestDirectoryHandleListsEntries(t *testing.T) {
	env, out := newTestEnv()
	h := NewDirectoryHandler(nil, env)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hi"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	require.NoError(t, h.Handle(dir))
	assert.Contains(t, out.String(), "hello.txt")
	assert.Contains(t, out.String(), "sub")
}

func TestDirectoryListFallback(t *testing.T) {
	env, out := newTestEnv()
	h := NewDirectoryHandler(nil, env)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	require.NoError(t, h.listFallback(dir))
	assert.Contains(t, out.String(), "a.txt")
	assert.Contains(t, out.String(), "nested/")
}
