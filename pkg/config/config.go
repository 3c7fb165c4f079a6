// Package config loads the optional TOML configuration controlling which
// handlers run and in what order. Configuration is loaded once at process
// start and passed by value into registry resolution; there is no ambient
// global lookup.
package config

// AppName is used for config file discovery (lv/config.toml, .lv/, lv.toml).
const AppName = "lv"

// HandlerConfig holds per-handler settings from [handlers.<name>].
type HandlerConfig struct {
	// Enabled removes the handler from dispatch when false.
	Enabled bool
	// Priority overrides the handler's default priority when non-nil.
	Priority *int
	// Options is an opaque bag passed through to the handler untouched.
	Options map[string]interface{}
}

// GeneralConfig holds the [general] section.
type GeneralConfig struct {
	// Version is the config schema version, "{major}.{minor}".
	Version string
}

// Config is the complete configuration for one invocation.
type Config struct {
	General  GeneralConfig
	Handlers map[string]HandlerConfig
}

func intPtr(v int) *int { return &v }

// Default returns the built-in configuration: all twelve handlers enabled at
// their default priorities. The map also defines the set of known handler
// names; unknown names in a config file are warned about and ignored.
func Default() *Config {
	return &Config{
		General: GeneralConfig{Version: "1.0"},
		Handlers: map[string]HandlerConfig{
			"directory": {Enabled: true, Priority: intPtr(100)},
			"archive":   {Enabled: true, Priority: intPtr(80)},
			"image":     {Enabled: true, Priority: intPtr(65)},
			"pdf":       {Enabled: true, Priority: intPtr(60)},
			"binary":    {Enabled: true, Priority: intPtr(60)},
			"media":     {Enabled: true, Priority: intPtr(55)},
			"json":      {Enabled: true, Priority: intPtr(50)},
			"xml":       {Enabled: true, Priority: intPtr(45)},
			"csv":       {Enabled: true, Priority: intPtr(40)},
			"markdown":  {Enabled: true, Priority: intPtr(35)},
			"yaml":      {Enabled: true, Priority: intPtr(30)},
			"default":   {Enabled: true, Priority: intPtr(0)},
		},
	}
}

// Handler returns the configuration for a handler name, falling back to an
// enabled entry with no overrides for names the config does not mention.
func (c *Config) Handler(name string) HandlerConfig {
	if hc, ok := c.Handlers[name]; ok {
		return hc
	}
	return HandlerConfig{Enabled: true}
}
