package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/lv/pkg/errors"
	"github.com/arthur-debert/lv/pkg/logging"
)

// FindConfigFile searches the standard locations for a config file and
// returns the first hit, or "" when none exists:
//
//  1. $XDG_CONFIG_HOME/lv/config.toml
//  2. ~/.config/lv/config.toml
//  3. ~/.lv/config.toml
//  4. ./lv.toml
func FindConfigFile() string {
	var candidates []string

	candidates = append(candidates, filepath.Join(xdg.ConfigHome, AppName, "config.toml"))

	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", AppName, "config.toml"),
			filepath.Join(home, "."+AppName, "config.toml"),
		)
	}

	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, AppName+".toml"))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// Load reads configuration from the given path, or searches the standard
// locations when path is empty. It never fails the invocation: a missing or
// malformed file falls back to Default, and malformed individual fields fall
// back to that field's default while the rest of the entry is kept.
func Load(path string) *Config {
	logger := logging.GetLogger("config")

	if path == "" {
		path = FindConfigFile()
	}
	if path == "" {
		logger.Debug().Msg("no configuration file found, using defaults")
		return Default()
	}

	data, err := parseFile(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("failed to load configuration, using defaults")
		return Default()
	}

	logger.Debug().Str("path", path).Msg("loaded configuration")
	return fromMap(data)
}

func parseFile(path string) (map[string]interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to read %s", path)
	}

	var data map[string]interface{}
	if err := toml.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
	}
	return data, nil
}

// fromMap merges parsed TOML data over the defaults. Validation is
// field-by-field so one bad value never rejects the whole entry.
func fromMap(data map[string]interface{}) *Config {
	logger := logging.GetLogger("config")
	cfg := Default()

	if general, ok := data["general"].(map[string]interface{}); ok {
		if version, ok := general["version"].(string); ok {
			cfg.General.Version = version
		} else if _, present := general["version"]; present {
			logger.Warn().Msg("invalid 'version' in [general]: expected string")
		}
	}

	handlersData, ok := data["handlers"].(map[string]interface{})
	if !ok {
		return cfg
	}

	for name, raw := range handlersData {
		defaults, known := cfg.Handlers[name]
		if !known {
			logger.Warn().Str("handler", name).Msg("unknown handler in configuration file")
			continue
		}
		entry, ok := raw.(map[string]interface{})
		if !ok {
			logger.Warn().Str("handler", name).Msg("invalid handler config: expected table")
			continue
		}
		cfg.Handlers[name] = validateHandler(name, entry, defaults)
	}

	return cfg
}

func validateHandler(name string, entry map[string]interface{}, defaults HandlerConfig) HandlerConfig {
	logger := logging.GetLogger("config")
	hc := defaults

	if raw, present := entry["enabled"]; present {
		if enabled, ok := raw.(bool); ok {
			hc.Enabled = enabled
		} else {
			logger.Warn().Str("handler", name).Msg("invalid 'enabled' value: expected bool")
		}
	}

	if raw, present := entry["priority"]; present {
		if priority, ok := asInt(raw); ok {
			hc.Priority = &priority
		} else {
			logger.Warn().Str("handler", name).Msg("invalid 'priority' value: expected integer")
		}
	}

	if raw, present := entry["options"]; present {
		if options, ok := raw.(map[string]interface{}); ok {
			hc.Options = options
		} else {
			logger.Warn().Str("handler", name).Msg("invalid 'options' value: expected table")
		}
	}

	return hc
}

// asInt accepts the integer shapes go-toml produces.
func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}
