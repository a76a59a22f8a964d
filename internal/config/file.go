package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the configuration for toastd.
// Loaded from ~/.config/toastd/toastd.toml
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Display  DisplayConfig  `toml:"display"`
	Audio    AudioConfig    `toml:"audio"`
	Theme    ThemeConfig    `toml:"theme"`
}

// DefaultsConfig seeds the process-wide default settings.
type DefaultsConfig struct {
	Position string   `toml:"position"` // "bottom-right", "top-center", "center", ...
	Duration Duration `toml:"duration"` // e.g., "3s", "1500ms", or 3000
}

// DisplayConfig contains surface-level rendering settings.
type DisplayConfig struct {
	OffsetX    int      `toml:"offset_x"`   // Pixels from the horizontal screen edge
	OffsetY    int      `toml:"offset_y"`   // Pixels from the vertical screen edge
	Width      int      `toml:"width"`      // Toast width in pixels
	Gap        int      `toml:"gap"`        // Gap between stacked toasts
	Transition Duration `toml:"transition"` // Entry/exit transition length
}

// AudioConfig contains audio settings.
type AudioConfig struct {
	Enabled bool        `toml:"enabled"`
	Volume  int         `toml:"volume"` // 0-100
	Sounds  SoundConfig `toml:"sounds"`
}

// SoundConfig contains per-severity sound file paths.
type SoundConfig struct {
	Info    string `toml:"info"`
	Success string `toml:"success"`
	Warn    string `toml:"warn"`
	Error   string `toml:"error"`
}

// ThemeConfig contains theme settings.
type ThemeConfig struct {
	Stylesheet string `toml:"stylesheet"` // Optional CSS file appended to the embedded theme
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Position: string(DefaultPosition),
			Duration: Duration(DefaultDuration),
		},
		Display: DisplayConfig{
			OffsetX:    16,
			OffsetY:    16,
			Width:      320,
			Gap:        8,
			Transition: Duration(300 * time.Millisecond),
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  80,
			Sounds:  SoundConfig{},
		},
		Theme: ThemeConfig{},
	}
}

// Settings returns the default settings described by the config file.
func (c *Config) Settings() Settings {
	s := Settings{Duration: c.Defaults.Duration.Duration()}
	if c.Defaults.Position != "" {
		if p, err := ParsePosition(c.Defaults.Position); err == nil {
			s.Position = p
		}
	}
	return s
}

// SoundFor returns the configured sound file path for a severity name.
// Expands ~ to the home directory.
func (c *Config) SoundFor(severity string) string {
	var path string
	switch severity {
	case "info":
		path = c.Audio.Sounds.Info
	case "success":
		path = c.Audio.Sounds.Success
	case "warn":
		path = c.Audio.Sounds.Warn
	case "error":
		path = c.Audio.Sounds.Error
	}
	return expandPath(path)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// Path returns the path to the toastd config file.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "toastd", "toastd.toml"), nil
}

// Load loads the configuration from the given path, or the default
// path when empty. If the file doesn't exist, returns the default
// configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given path, or the default
// path when empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Defaults.Position != "" {
		if _, err := ParsePosition(c.Defaults.Position); err != nil {
			return err
		}
	}
	if c.Defaults.Duration < 0 {
		return fmt.Errorf("default duration must not be negative, got %s", c.Defaults.Duration.Duration())
	}
	if c.Display.Width < 100 || c.Display.Width > 1000 {
		return fmt.Errorf("width must be between 100 and 1000, got %d", c.Display.Width)
	}
	if c.Display.Gap < 0 {
		return fmt.Errorf("gap must not be negative, got %d", c.Display.Gap)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}
	return nil
}
