package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Generator GeneratorConfig `json:"generator"`
	Templates TemplatesConfig `json:"templates"`
	Reload    saveReload      `json:"reload"`
	History   HistoryConfig   `json:"history"`
	UI        UIConfig        `json:"ui"`
}

type saveReload struct {
	Auto       bool     `json:"auto"`
	GraceDelay string   `json:"graceDelay"`
	Command    []string `json:"command,omitempty"`
}

// Save writes the config to path, creating parent directories. An empty
// path saves to the default location.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	sc := saveConfig{
		Generator: cfg.Generator,
		Templates: cfg.Templates,
		Reload: saveReload{
			Auto:       cfg.Reload.Auto,
			GraceDelay: cfg.Reload.GraceDelay.String(),
			Command:    cfg.Reload.Command,
		},
		History: cfg.History,
		UI:      cfg.UI,
	}
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SaveDefaultIfMissing writes the default config to path when no file
// exists there yet, so setup leaves the user something to edit.
func SaveDefaultIfMissing(path string) (bool, error) {
	if path == "" {
		path = ConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	return true, Save(Default(), path)
}
