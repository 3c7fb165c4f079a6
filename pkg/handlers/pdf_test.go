package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFCanHandle(t *testing.T) {
	env, _ := newTestEnv()
	h := NewPDFHandler(nil, env)

	tests := []struct {
		name    string
		file    string
		content string
		want    bool
	}{
		{"pdf extension", "doc.pdf", "%PDF-1.7 content", true},
		{"uppercase extension", "DOC.PDF", "%PDF-1.7 content", true},
		{"empty file with pdf extension", "empty.pdf", "", true},
		{"magic without extension", "doc", "%PDF-1.4 content", true},
		{"plain text", "notes.txt", "just some text", false},
		{"magic not at start", "notes.txt", " %PDF-1.4", false},
		{"empty file without extension", "empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.file, tt.content)
			assert.Equal(t, tt.want, h.CanHandle(path, mustStat(t, path)))
		})
	}
}

func TestPDFHandleEmptyFile(t *testing.T) {
	env, out := newTestEnv()
	h := NewPDFHandler(nil, env)

	path := writeTemp(t, "empty.pdf", "")
	require.NoError(t, h.Handle(path))
	assert.Equal(t, "(Empty PDF file)\n", out.String())
}

func TestPDFHandleBrokenDocument(t *testing.T) {
	env, out := newTestEnv()
	h := NewPDFHandler(nil, env)

	// Extraction cannot succeed on this; the summary must appear instead of
	// raw PDF bytes on the terminal.
	path := writeTemp(t, "broken.pdf", "%PDF-1.4 but nothing else")
	require.NoError(t, h.Handle(path))
	assert.NotContains(t, out.String(), "but nothing else")
}
