package handlers

import (
	"sort"

	"github.com/arthur-debert/lv/pkg/config"
	"github.com/arthur-debert/lv/pkg/logging"
	"github.com/arthur-debert/lv/pkg/pager"
)

// Env carries the shared collaborators handed to every handler at
// construction time.
type Env struct {
	Pager *pager.Engine
	// Fallback is the always-capable raw renderer handlers delegate to
	// when their format-specific tool cannot serve.
	Fallback *DefaultHandler
}

// NewEnv wires an Env to the real terminal.
func NewEnv() *Env {
	p := pager.New()
	return &Env{
		Pager:    p,
		Fallback: NewDefaultHandler(p),
	}
}

// Descriptor binds a handler name to its default priority and constructor.
// The table below is the static default set; its insertion order is the tie
// break when effective priorities collide.
type Descriptor struct {
	Name            string
	DefaultPriority int
	New             func(options map[string]interface{}, env *Env) Handler
}

// Defaults is the static dispatch table. Directory runs first, the raw
// default renderer last.
func Defaults() []Descriptor {
	return []Descriptor{
		{"directory", 100, func(o map[string]interface{}, e *Env) Handler { return NewDirectoryHandler(o, e) }},
		{"archive", 80, func(o map[string]interface{}, e *Env) Handler { return NewArchiveHandler(o, e) }},
		{"image", 65, func(o map[string]interface{}, e *Env) Handler { return NewImageHandler(o, e) }},
		{"pdf", 60, func(o map[string]interface{}, e *Env) Handler { return NewPDFHandler(o, e) }},
		{"binary", 60, func(o map[string]interface{}, e *Env) Handler { return NewBinaryHandler(o, e) }},
		{"media", 55, func(o map[string]interface{}, e *Env) Handler { return NewMediaHandler(o, e) }},
		{"json", 50, func(o map[string]interface{}, e *Env) Handler { return NewJSONHandler(o, e) }},
		{"xml", 45, func(o map[string]interface{}, e *Env) Handler { return NewXMLHandler(o, e) }},
		{"csv", 40, func(o map[string]interface{}, e *Env) Handler { return NewCSVHandler(o, e) }},
		{"markdown", 35, func(o map[string]interface{}, e *Env) Handler { return NewMarkdownHandler(o, e) }},
		{"yaml", 30, func(o map[string]interface{}, e *Env) Handler { return NewYAMLHandler(o, e) }},
		{"default", 0, func(o map[string]interface{}, e *Env) Handler { return e.Fallback }},
	}
}

// Resolve builds the ordered handler list for one invocation: defaults merged
// with the config (enabled and priority overrides, options passed through),
// disabled handlers dropped, sorted by effective priority descending. Ties
// preserve the static default order. The result is deterministic for a given
// Config.
func Resolve(cfg *config.Config) []Handler {
	return ResolveWith(cfg, NewEnv())
}

// ResolveWith is Resolve with an explicit Env, for tests.
func ResolveWith(cfg *config.Config, env *Env) []Handler {
	logger := logging.GetLogger("handlers")

	if cfg == nil {
		cfg = config.Default()
	}

	type entry struct {
		handler  Handler
		priority int
	}
	var entries []entry

	for _, d := range Defaults() {
		hc := cfg.Handler(d.Name)
		if !hc.Enabled {
			logger.Debug().Str("handler", d.Name).Msg("handler disabled by configuration")
			continue
		}
		priority := d.DefaultPriority
		if hc.Priority != nil {
			priority = *hc.Priority
		}
		entries = append(entries, entry{d.New(hc.Options, env), priority})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].priority > entries[j].priority
	})

	resolved := make([]Handler, len(entries))
	for i, e := range entries {
		resolved[i] = e.handler
	}
	return resolved
}
