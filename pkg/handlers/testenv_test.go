package handlers

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/lv/pkg/pager"
)

// newTestEnv returns an Env whose pager never spawns processes: output is
// captured in the returned buffer and the engine believes it is not a TTY.
func newTestEnv() (*Env, *bytes.Buffer) {
	var out bytes.Buffer
	p := &pager.Engine{
		Out:       &out,
		IsTTY:     func() bool { return false },
		Height:    func() int { return 24 },
		PagerName: "less",
		PagerArgs: pager.DefaultPagerArgs,
	}
	return &Env{Pager: p, Fallback: NewDefaultHandler(p)}, &out
}

// writeTemp creates a file with the given name and content under a fresh
// temp directory and returns its path.
func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func mustStat(t *testing.T, path string) fs.FileInfo {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info
}
