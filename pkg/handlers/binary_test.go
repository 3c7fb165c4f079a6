package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryCanHandle(t *testing.T) {
	env, _ := newTestEnv()
	h := NewBinaryHandler(nil, env)

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"null bytes", "MZ\x00\x01\x02binary\x00data", true},
		{"elf header", "\x7fELF\x02\x01\x01\x00\x00\x00\x00\x00", true},
		{"plain ascii text", "hello world\nthis is text\n", false},
		{"utf-8 text", "héllo wörld\n", false},
		{"empty file", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "target", tt.content)
			assert.Equal(t, tt.want, h.CanHandle(path, mustStat(t, path)))
		})
	}
}

func TestBinaryCanHandleDirectory(t *testing.T) {
	env, _ := newTestEnv()
	h := NewBinaryHandler(nil, env)

	dir := t.TempDir()
	assert.False(t, h.CanHandle(dir, mustStat(t, dir)))
}

func TestBinaryContentSniff(t *testing.T) {
	env, _ := newTestEnv()
	h := NewBinaryHandler(nil, env)

	withNull := writeTemp(t, "blob", "abc\x00def")
	assert.True(t, h.isBinaryContent(withNull))

	text := writeTemp(t, "text", "abcdef\n")
	assert.False(t, h.isBinaryContent(text))
}

func TestBinaryHandle(t *testing.T) {
	env, out := newTestEnv()
	h := NewBinaryHandler(nil, env)

	path := writeTemp(t, "blob", "\x00\x01\x02\x03")
	require.NoError(t, h.Handle(path))
	// Hex dump when hexdump is installed, raw bytes otherwise; either way
	// something is shown.
	assert.NotEmpty(t, out.String())
}
