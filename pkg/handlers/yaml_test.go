package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLCanHandle(t *testing.T) {
	env, _ := newTestEnv()
	h := NewYAMLHandler(nil, env)

	tests := []struct {
		name    string
		file    string
		content string
		want    bool
	}{
		{"yaml extension", "config.yaml", "key: value", true},
		{"yml extension", "config.yml", "key: value", true},
		{"empty file with yaml extension", "empty.yaml", "", true},
		{"document separator without extension", "data.txt", "---\nkey: value\n", true},
		{"yaml directive without extension", "data.txt", "%YAML 1.2\n---\nkey: value\n", true},
		{"key value line without extension", "data.txt", "name: example\nversion: 1\n", true},
		{"dotted key without extension", "data.txt", "log.level: debug\n", true},
		{"bare key with no value", "data.txt", "done:\n", true},
		{"plain sentence", "notes.txt", "just some text here", false},
		{"url is not a key value pair", "notes.txt", "http://example.com/path\n", false},
		{"empty file without extension", "empty.txt", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.file, tt.content)
			assert.Equal(t, tt.want, h.CanHandle(path, mustStat(t, path)))
		})
	}
}

func TestYAMLHandleEmptyFile(t *testing.T) {
	env, out := newTestEnv()
	h := NewYAMLHandler(nil, env)

	path := writeTemp(t, "empty.yaml", "")
	require.NoError(t, h.Handle(path))
	assert.Equal(t, "(Empty YAML file)\n", out.String())
}

func TestYAMLHandleInvalidShowsRaw(t *testing.T) {
	env, out := newTestEnv()
	h := NewYAMLHandler(nil, env)

	content := "key: [unclosed\n  bad indent: here\n"
	path := writeTemp(t, "broken.yaml", content)
	require.NoError(t, h.Handle(path))
	assert.Equal(t, content, out.String())
}

func TestYAMLHandleValidContent(t *testing.T) {
	env, out := newTestEnv()
	h := NewYAMLHandler(nil, env)

	path := writeTemp(t, "config.yaml", "name: example\nversion: 2\n")
	require.NoError(t, h.Handle(path))
	assert.Contains(t, out.String(), "name")
	assert.Contains(t, out.String(), "example")
}
