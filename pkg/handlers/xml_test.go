package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXMLCanHandle(t *testing.T) {
	env, _ := newTestEnv()
	h := NewXMLHandler(nil, env)

	tests := []struct {
		name    string
		file    string
		content string
		want    bool
	}{
		{"xml extension", "data.xml", "<root/>", true},
		{"html extension", "page.html", "<html></html>", true},
		{"svg extension", "icon.svg", "<svg/>", true},
		{"empty file with xml extension", "empty.xml", "", true},
		{"xml declaration without extension", "data.txt", `<?xml version="1.0"?><root/>`, true},
		{"html doctype without extension", "page.txt", "<!DOCTYPE html><html></html>", true},
		{"html tag without extension", "page.txt", "<HTML><body/></HTML>", true},
		{"plain text", "notes.txt", "just some text", false},
		{"json content", "data.txt", `{"key": "value"}`, false},
		{"empty file without extension", "empty.txt", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.file, tt.content)
			assert.Equal(t, tt.want, h.CanHandle(path, mustStat(t, path)))
		})
	}
}

func TestXMLHandleEmptyFile(t *testing.T) {
	env, out := newTestEnv()
	h := NewXMLHandler(nil, env)

	path := writeTemp(t, "empty.xml", "")
	require.NoError(t, h.Handle(path))
	assert.Equal(t, "(Empty XML file)\n", out.String())
}

func TestXMLHandleMalformedShowsRaw(t *testing.T) {
	env, out := newTestEnv()
	h := NewXMLHandler(nil, env)

	// Neither xmllint nor the built-in printer can format this, so the raw
	// document is shown.
	content := "<root><unclosed></root>"
	path := writeTemp(t, "broken.xml", content)
	require.NoError(t, h.Handle(path))
	assert.Equal(t, content, out.String())
}

func TestXMLHandleWellFormed(t *testing.T) {
	env, out := newTestEnv()
	h := NewXMLHandler(nil, env)

	path := writeTemp(t, "data.xml", "<root><item>one</item></root>")
	require.NoError(t, h.Handle(path))
	assert.Contains(t, out.String(), "<item>one</item>")
}
