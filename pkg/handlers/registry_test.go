package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/lv/pkg/config"
)

func names(resolved []Handler) []string {
	out := make([]string, len(resolved))
	for i, h := range resolved {
		out[i] = h.Name()
	}
	return out
}

func indexOf(resolved []Handler, name string) int {
	for i, h := range resolved {
		if h.Name() == name {
			return i
		}
	}
	return -1
}

func TestResolveDefaultConfig(t *testing.T) {
	env, _ := newTestEnv()
	resolved := ResolveWith(config.Default(), env)

	require.Len(t, resolved, 12)
	assert.Equal(t, "directory", resolved[0].Name(), "directory handler (100) should be first")
	assert.Equal(t, "default", resolved[11].Name(), "default handler (0) should be last")

	for _, want := range []string{
		"directory", "archive", "image", "pdf", "binary", "media",
		"json", "xml", "csv", "markdown", "yaml", "default",
	} {
		assert.Contains(t, names(resolved), want)
	}
}

func TestResolveNilConfig(t *testing.T) {
	env, _ := newTestEnv()
	resolved := ResolveWith(nil, env)
	assert.Len(t, resolved, 12)
}

func TestResolvePriorityTiesPreserveDefaultOrder(t *testing.T) {
	env, _ := newTestEnv()
	resolved := ResolveWith(config.Default(), env)

	// pdf and binary share priority 60; pdf comes first in the static table.
	assert.Less(t, indexOf(resolved, "pdf"), indexOf(resolved, "binary"))
}

func TestResolveDisabledHandler(t *testing.T) {
	cfg := config.Default()
	cfg.Handlers["json"] = config.HandlerConfig{Enabled: false}

	env, _ := newTestEnv()
	resolved := ResolveWith(cfg, env)

	assert.Len(t, resolved, 11)
	assert.NotContains(t, names(resolved), "json")
}

func TestResolveDisabledHandlerKeepsRelativeOrder(t *testing.T) {
	env, _ := newTestEnv()
	before := names(ResolveWith(config.Default(), env))

	cfg := config.Default()
	cfg.Handlers["pdf"] = config.HandlerConfig{Enabled: false}
	after := names(ResolveWith(cfg, env))

	var want []string
	for _, n := range before {
		if n != "pdf" {
			want = append(want, n)
		}
	}
	assert.Equal(t, want, after)
}

func TestResolveMultipleDisabled(t *testing.T) {
	cfg := config.Default()
	for _, name := range []string{"json", "pdf", "image"} {
		cfg.Handlers[name] = config.HandlerConfig{Enabled: false}
	}

	env, _ := newTestEnv()
	resolved := ResolveWith(cfg, env)

	assert.Len(t, resolved, 9)
	assert.NotContains(t, names(resolved), "json")
	assert.NotContains(t, names(resolved), "pdf")
	assert.NotContains(t, names(resolved), "image")
}

func TestResolveCustomPriority(t *testing.T) {
	priority := 150
	cfg := config.Default()
	cfg.Handlers["json"] = config.HandlerConfig{Enabled: true, Priority: &priority}

	env, _ := newTestEnv()
	resolved := ResolveWith(cfg, env)

	assert.Equal(t, "json", resolved[0].Name(), "json (150) should sort ahead of directory (100)")
}

func TestResolveSwappedPriorities(t *testing.T) {
	jsonPriority, pdfPriority := 60, 50
	cfg := config.Default()
	cfg.Handlers["json"] = config.HandlerConfig{Enabled: true, Priority: &jsonPriority}
	cfg.Handlers["pdf"] = config.HandlerConfig{Enabled: true, Priority: &pdfPriority}

	env, _ := newTestEnv()
	resolved := ResolveWith(cfg, env)

	assert.Less(t, indexOf(resolved, "json"), indexOf(resolved, "pdf"))
}

func TestResolveDefaultPriorityWhenUnset(t *testing.T) {
	cfg := config.Default()
	cfg.Handlers["json"] = config.HandlerConfig{Enabled: true, Priority: nil}

	env, _ := newTestEnv()
	resolved := ResolveWith(cfg, env)

	pos := indexOf(resolved, "json")
	require.GreaterOrEqual(t, pos, 0)
	assert.Greater(t, pos, 3, "json should stay in the middle of the order")
	assert.Less(t, pos, 9)
}

func TestResolveIgnoresUnknownHandlerNames(t *testing.T) {
	cfg := config.Default()
	cfg.Handlers["telepathy"] = config.HandlerConfig{Enabled: true}

	env, _ := newTestEnv()
	resolved := ResolveWith(cfg, env)

	assert.Len(t, resolved, 12)
	assert.NotContains(t, names(resolved), "telepathy")
}

func TestResolveAllDisabledExceptDirectoryAndDefault(t *testing.T) {
	cfg := config.Default()
	for name := range cfg.Handlers {
		if name != "directory" && name != "default" {
			cfg.Handlers[name] = config.HandlerConfig{Enabled: false}
		}
	}

	env, _ := newTestEnv()
	resolved := ResolveWith(cfg, env)

	require.Len(t, resolved, 2)
	assert.Equal(t, "directory", resolved[0].Name())
	assert.Equal(t, "default", resolved[1].Name())
}

func TestResolveSortedDescending(t *testing.T) {
	env, _ := newTestEnv()
	resolved := ResolveWith(config.Default(), env)

	for i := 1; i < len(resolved); i++ {
		assert.GreaterOrEqual(t, resolved[i-1].Priority(), resolved[i].Priority(),
			"handlers must be ordered by priority descending")
	}
}

func TestResolveDeterministic(t *testing.T) {
	env, _ := newTestEnv()
	first := names(ResolveWith(config.Default(), env))
	second := names(ResolveWith(config.Default(), env))
	assert.Equal(t, first, second)
}

func TestDefaultPriorities(t *testing.T) {
	env, _ := newTestEnv()

	tests := []struct {
		name     string
		priority int
	}{
		{"directory", 100},
		{"archive", 80},
		{"image", 65},
		{"pdf", 60},
		{"binary", 60},
		{"media", 55},
		{"json", 50},
		{"xml", 45},
		{"csv", 40},
		{"markdown", 35},
		{"yaml", 30},
		{"default", 0},
	}

	for _, d := range Defaults() {
		for _, tt := range tests {
			if d.Name != tt.name {
				continue
			}
			assert.Equal(t, tt.priority, d.DefaultPriority, d.Name)
			h := d.New(nil, env)
			assert.Equal(t, tt.name, h.Name())
			assert.Equal(t, tt.priority, h.Priority(), "handler default priority should match table")
		}
	}
}
