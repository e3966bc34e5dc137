package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/tinted"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary. Pointer fields keep
// "unset" distinguishable from explicit false/zero when merging over
// defaults, and durations come in as strings.
type rawConfig struct {
	Generator rawGeneratorConfig `json:"generator"`
	Templates rawTemplatesConfig `json:"templates"`
	Reload    rawReloadConfig    `json:"reload"`
	History   rawHistoryConfig   `json:"history"`
	UI        rawUIConfig        `json:"ui"`
}

type rawGeneratorConfig struct {
	Command    string `json:"command"`
	ConfigPath string `json:"configPath"`
}

type rawTemplatesConfig struct {
	Dark  rawMapping `json:"dark"`
	Light rawMapping `json:"light"`
}

type rawMapping struct {
	Template string `json:"template"`
	Target   string `json:"target"`
}

type rawReloadConfig struct {
	Auto       *bool    `json:"auto"`
	GraceDelay string   `json:"graceDelay"`
	Command    []string `json:"command"`
}

type rawHistoryConfig struct {
	Enabled *bool  `json:"enabled"`
	DBPath  string `json:"dbPath"`
}

type rawUIConfig struct {
	SwatchWidth *int `json:"swatchWidth"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/tinted/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
		if path == "" {
			expandPaths(cfg)
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			expandPaths(cfg)
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &raw)
	expandPaths(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Generator
	if raw.Generator.Command != "" {
		cfg.Generator.Command = raw.Generator.Command
	}
	if raw.Generator.ConfigPath != "" {
		cfg.Generator.ConfigPath = raw.Generator.ConfigPath
	}

	// Templates
	mergeMapping(&cfg.Templates.Dark, raw.Templates.Dark)
	mergeMapping(&cfg.Templates.Light, raw.Templates.Light)

	// Reload
	if raw.Reload.Auto != nil {
		cfg.Reload.Auto = *raw.Reload.Auto
	}
	if raw.Reload.GraceDelay != "" {
		if d, err := time.ParseDuration(raw.Reload.GraceDelay); err == nil {
			cfg.Reload.GraceDelay = d
		}
	}
	if len(raw.Reload.Command) > 0 {
		cfg.Reload.Command = raw.Reload.Command
	}

	// History
	if raw.History.Enabled != nil {
		cfg.History.Enabled = *raw.History.Enabled
	}
	if raw.History.DBPath != "" {
		cfg.History.DBPath = raw.History.DBPath
	}

	// UI
	if raw.UI.SwatchWidth != nil {
		cfg.UI.SwatchWidth = *raw.UI.SwatchWidth
	}
}

func mergeMapping(dst *Mapping, raw rawMapping) {
	if raw.Template != "" {
		dst.Template = raw.Template
	}
	if raw.Target != "" {
		dst.Target = raw.Target
	}
}

func expandPaths(cfg *Config) {
	cfg.Generator.ConfigPath = ExpandPath(cfg.Generator.ConfigPath)
	cfg.Templates.Dark.Target = ExpandPath(cfg.Templates.Dark.Target)
	cfg.Templates.Light.Target = ExpandPath(cfg.Templates.Light.Target)
	cfg.History.DBPath = ExpandPath(cfg.History.DBPath)
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
