// Package config defines the videowall settings format and helpers for
// loading or saving it to disk.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// AppID is the stable application identifier used for config storage.
	AppID = "videowall"
	// AppConfigSubdir is the OS-specific directory that holds the config file.
	AppConfigSubdir = "VideoWall"
	// AppConfigName is the JSON file stored on disk.
	AppConfigName = "settings.json"

	// LayoutSubdir is the default directory (under the config dir) that holds
	// saved layout files.
	LayoutSubdir = "Layouts"
	// LastLayoutName is the layout file written on shutdown and reopened on
	// the next start when openLastOnStartup is set.
	LastLayoutName = "last_layout.json"

	// DefaultVolume is the playback level applied to panes whose spec does
	// not carry one.
	DefaultVolume = 1.0
	// DefaultJogInterval is the jog seek step in milliseconds.
	DefaultJogInterval = 10000
	// DefaultPreRoll is how many milliseconds before a persisted resume
	// position playback restarts, so the viewer gets a short run-up.
	DefaultPreRoll = 2000
	// DefaultWindowWidth is the initial window width before any layout is
	// restored.
	DefaultWindowWidth = 1280
	// DefaultWindowHeight is the matching initial window height.
	DefaultWindowHeight = 720
)

// Config aggregates every user-facing preference persisted between sessions.
type Config struct {
	AlwaysOnTop        bool    `json:"alwaysOnTop"`
	AutoUpdateLayout   bool    `json:"autoUpdateLayout"`
	DefaultVolume      float64 `json:"defaultVolume"`
	JogInterval        int64   `json:"jogIntervalMs"`
	MovieFolder        string  `json:"movieFolder"`
	OpenLastOnStartup  bool    `json:"openLastOnStartup"`
	RemainingTime      bool    `json:"remainingTime"`
	RestoreWindowState bool    `json:"restoreWindowState"`
	LayoutFolder       string  `json:"layoutFolder"`
	PreRoll            int64   `json:"preRollMs"`
}

// wireConfig mirrors Config with pointer fields so that keys absent from the
// file keep their (sometimes true) defaults instead of collapsing to zero
// values.
type wireConfig struct {
	AlwaysOnTop        *bool    `json:"alwaysOnTop"`
	AutoUpdateLayout   *bool    `json:"autoUpdateLayout"`
	DefaultVolume      *float64 `json:"defaultVolume"`
	JogInterval        *int64   `json:"jogIntervalMs"`
	MovieFolder        *string  `json:"movieFolder"`
	OpenLastOnStartup  *bool    `json:"openLastOnStartup"`
	RemainingTime      *bool    `json:"remainingTime"`
	RestoreWindowState *bool    `json:"restoreWindowState"`
	LayoutFolder       *string  `json:"layoutFolder"`
	PreRoll            *int64   `json:"preRollMs"`
}

// ConfigDir resolves the writable directory that should contain the config file.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppConfigSubdir), nil
}

// ConfigPath is a helper that returns the full path to settings.json.
func ConfigPath() (string, error) {
	d, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, AppConfigName), nil
}

// LastLayoutPath returns the layout file used for the implicit save on exit.
func (c *Config) LastLayoutPath() string {
	return filepath.Join(c.LayoutFolder, LastLayoutName)
}

// Load reads the config from disk, filling in defaults for anything missing.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := newDefaultConfig()
			// Try saving an initial config, but still return defaults even if it fails.
			_ = cfg.Save()
			return cfg, nil
		}
		return nil, err
	}

	wire := &wireConfig{}
	if err := json.Unmarshal(b, wire); err != nil {
		return nil, fmt.Errorf("config parse error: %w", err)
	}
	cfg := newDefaultConfig()
	cfg.merge(wire)
	cfg.applyRuntimeDefaults()
	return cfg, nil
}

// Save persists the configuration to disk, creating directories as needed.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Default returns the built-in configuration, used when loading fails.
func Default() *Config {
	return newDefaultConfig()
}

// newDefaultConfig builds an in-memory config populated with safe defaults.
func newDefaultConfig() *Config {
	cfg := &Config{
		AlwaysOnTop:       true,
		AutoUpdateLayout:  true,
		DefaultVolume:     DefaultVolume,
		JogInterval:       DefaultJogInterval,
		OpenLastOnStartup: true,
		RemainingTime:     true,
		PreRoll:           DefaultPreRoll,
	}
	cfg.applyRuntimeDefaults()
	return cfg
}

// merge copies every value present in the wire form over the defaults.
func (c *Config) merge(w *wireConfig) {
	if w.AlwaysOnTop != nil {
		c.AlwaysOnTop = *w.AlwaysOnTop
	}
	if w.AutoUpdateLayout != nil {
		c.AutoUpdateLayout = *w.AutoUpdateLayout
	}
	if w.DefaultVolume != nil {
		c.DefaultVolume = *w.DefaultVolume
	}
	if w.JogInterval != nil {
		c.JogInterval = *w.JogInterval
	}
	if w.MovieFolder != nil {
		c.MovieFolder = *w.MovieFolder
	}
	if w.OpenLastOnStartup != nil {
		c.OpenLastOnStartup = *w.OpenLastOnStartup
	}
	if w.RemainingTime != nil {
		c.RemainingTime = *w.RemainingTime
	}
	if w.RestoreWindowState != nil {
		c.RestoreWindowState = *w.RestoreWindowState
	}
	if w.LayoutFolder != nil {
		c.LayoutFolder = *w.LayoutFolder
	}
	if w.PreRoll != nil {
		c.PreRoll = *w.PreRoll
	}
}

// applyRuntimeDefaults normalizes config values after a load or when defaults
// are constructed, ensuring the rest of the app always receives sane inputs.
func (c *Config) applyRuntimeDefaults() {
	if c.DefaultVolume < 0 || c.DefaultVolume > 1 {
		c.DefaultVolume = DefaultVolume
	}
	if c.JogInterval <= 0 {
		c.JogInterval = DefaultJogInterval
	}
	if c.PreRoll < 0 {
		c.PreRoll = DefaultPreRoll
	}
	if c.MovieFolder == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.MovieFolder = filepath.Join(home, "Movies")
		}
	}
	if c.LayoutFolder == "" {
		if dir, err := ConfigDir(); err == nil {
			c.LayoutFolder = filepath.Join(dir, LayoutSubdir)
		}
	}
}
