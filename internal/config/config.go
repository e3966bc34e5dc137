package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Generator GeneratorConfig `json:"generator"`
	Templates TemplatesConfig `json:"templates"`
	Reload    ReloadConfig    `json:"reload"`
	History   HistoryConfig   `json:"history"`
	UI        UIConfig        `json:"ui"`
}

// GeneratorConfig locates the external scheme generator.
type GeneratorConfig struct {
	Command    string `json:"command"`    // generator binary name or path
	ConfigPath string `json:"configPath"` // the generator's own config file (supports ~ expansion)
}

// TemplatesConfig declares the two template mappings tinted maintains in
// the generator's config: one per dark/light variant.
type TemplatesConfig struct {
	Dark  Mapping `json:"dark"`
	Light Mapping `json:"light"`
}

// Mapping links a generator template to the artifact file it renders to.
type Mapping struct {
	Template string `json:"template"`
	Target   string `json:"target"` // supports ~ expansion
}

// ReloadConfig controls editor reload after an apply.
type ReloadConfig struct {
	Auto       bool          `json:"auto"`       // reload automatically after a successful apply
	GraceDelay time.Duration `json:"graceDelay"` // wait for the generator to finish writing artifacts
	Command    []string      `json:"command"`    // editor reload invocation, argv form
}

// HistoryConfig configures the apply-history log.
type HistoryConfig struct {
	Enabled bool   `json:"enabled"`
	DBPath  string `json:"dbPath"` // supports ~ expansion
}

// UIConfig configures browse TUI appearance.
type UIConfig struct {
	SwatchWidth int `json:"swatchWidth"` // rendered width of each preview swatch
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Command:    "flavours",
			ConfigPath: "~/.config/flavours/config.toml",
		},
		Templates: TemplatesConfig{
			Dark: Mapping{
				Template: "tinted-dark",
				Target:   "~/.cache/tinted/theme-dark.vim",
			},
			Light: Mapping{
				Template: "tinted-light",
				Target:   "~/.cache/tinted/theme-light.vim",
			},
		},
		Reload: ReloadConfig{
			Auto:       true,
			GraceDelay: 500 * time.Millisecond,
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  "~/.local/share/tinted/history.db",
		},
		UI: UIConfig{
			SwatchWidth: 9,
		},
	}
}

// Validate checks the configuration for errors, correcting out-of-range
// values in place.
func (c *Config) Validate() error {
	if c.Reload.GraceDelay < 0 {
		c.Reload.GraceDelay = 500 * time.Millisecond
	}
	if c.UI.SwatchWidth <= 0 {
		c.UI.SwatchWidth = 9
	}
	return nil
}

// ArtifactPaths returns the two artifact target paths, dark first.
func (c *Config) ArtifactPaths() []string {
	return []string{c.Templates.Dark.Target, c.Templates.Light.Target}
}
