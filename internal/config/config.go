// Package config handles configuration loading and defaults for littleprince.
// Configuration is loaded from XDG-compliant paths (typically ~/.config/littleprince/config.yaml).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"littleprince/internal/fsutil"

	"gopkg.in/yaml.v3"
)

const appName = "littleprince"

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.littleprince)
	DataDir string `yaml:"data_dir,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`

	// Notifications configures desktop notifications
	Notifications NotificationConfig `yaml:"notifications,omitempty"`

	// Log configures the log file
	Log LogConfig `yaml:"log,omitempty"`
}

// NotificationConfig defines desktop notification settings.
type NotificationConfig struct {
	// Enabled enables/disables notifications
	Enabled bool `yaml:"enabled"`

	// RequirePermission asks the user before the first notification
	RequirePermission bool `yaml:"require_permission"`

	// Channels registers a notification channel and posts on it
	Channels bool `yaml:"channels"`

	// Sound enables notification sounds
	Sound bool `yaml:"sound"`

	// AppName is the sender name shown by the notification service
	AppName string `yaml:"app_name,omitempty"`
}

// LogConfig defines logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level,omitempty"`

	// File overrides the log path (default: <data_dir>/littleprince.log)
	File string `yaml:"file,omitempty"`
}

// ThemeConfig defines color and style settings.
type ThemeConfig struct {
	// Primary color for focused elements (hex, e.g., "#FF5733")
	Primary string `yaml:"primary,omitempty"`

	// Accent color for highlights (hex)
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text (hex)
	Muted string `yaml:"muted,omitempty"`

	// Background color (hex)
	Background string `yaml:"background,omitempty"`

	// Text color (hex)
	Text string `yaml:"text,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "left,h"
type KeysConfig struct {
	Quit string `yaml:"quit,omitempty"` // default: "q,ctrl+c"
	Help string `yaml:"help,omitempty"` // default: "?"

	// Direct selection
	Morning string `yaml:"morning,omitempty"` // default: "1"
	Day     string `yaml:"day,omitempty"`     // default: "2"
	Evening string `yaml:"evening,omitempty"` // default: "3"
	Night   string `yaml:"night,omitempty"`   // default: "4"

	// Button focus
	Prev  string `yaml:"prev,omitempty"`  // default: "left,h"
	Next  string `yaml:"next,omitempty"`  // default: "right,l,tab"
	Press string `yaml:"press,omitempty"` // default: "enter,space"

	// Permission prompt
	Allow string `yaml:"allow,omitempty"` // default: "y,enter"
	Deny  string `yaml:"deny,omitempty"`  // default: "n,esc"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// NarrowLayoutThreshold is the terminal width below which buttons are stacked
	NarrowLayoutThreshold int `yaml:"narrow_layout_threshold,omitempty"` // default: 60
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Theme: ThemeConfig{
			Primary:    "#D97706", // Amber
			Accent:     "#DC2626", // Rose red
			Muted:      "#6B7280", // Gray
			Background: "",        // Terminal default
			Text:       "",        // Terminal default
		},
		Keys: KeysConfig{
			// Defaults are empty strings, which means use built-in defaults
		},
		UX: UXConfig{
			NarrowLayoutThreshold: 60,
		},
		Notifications: NotificationConfig{
			Enabled:           true,
			RequirePermission: true,
			Channels:          true,
			Sound:             false,
			AppName:           appName,
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, "."+appName)
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// Path returns the path to the config file.
func Path() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults.
// If no config file exists, returns default configuration.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads configuration from path, merging with defaults.
// An empty path or a missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, err
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; fall back to conservative merge if this fails

	// Merge user config with defaults (presence-aware for booleans)
	cfg.mergeFromYAML(&userCfg, &doc)

	return cfg, nil
}

// mergeNonEmpty applies non-empty values from other to c.
// It intentionally does not touch booleans (those require presence-aware merging).
func (c *Config) mergeNonEmpty(other *Config) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}

	mergeString(&c.Theme.Primary, other.Theme.Primary)
	mergeString(&c.Theme.Accent, other.Theme.Accent)
	mergeString(&c.Theme.Muted, other.Theme.Muted)
	mergeString(&c.Theme.Background, other.Theme.Background)
	mergeString(&c.Theme.Text, other.Theme.Text)

	mergeString(&c.Keys.Quit, other.Keys.Quit)
	mergeString(&c.Keys.Help, other.Keys.Help)
	mergeString(&c.Keys.Morning, other.Keys.Morning)
	mergeString(&c.Keys.Day, other.Keys.Day)
	mergeString(&c.Keys.Evening, other.Keys.Evening)
	mergeString(&c.Keys.Night, other.Keys.Night)
	mergeString(&c.Keys.Prev, other.Keys.Prev)
	mergeString(&c.Keys.Next, other.Keys.Next)
	mergeString(&c.Keys.Press, other.Keys.Press)
	mergeString(&c.Keys.Allow, other.Keys.Allow)
	mergeString(&c.Keys.Deny, other.Keys.Deny)

	if other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}

	mergeString(&c.Notifications.AppName, other.Notifications.AppName)

	mergeString(&c.Log.Level, other.Log.Level)
	mergeString(&c.Log.File, other.Log.File)
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	c.mergeNonEmpty(other)

	// Without a parsed document we cannot tell an explicit false from an
	// omitted key, so booleans keep their defaults.
	if doc == nil || len(doc.Content) == 0 {
		return
	}

	if yamlHasPath(doc, "notifications", "enabled") {
		c.Notifications.Enabled = other.Notifications.Enabled
	}
	if yamlHasPath(doc, "notifications", "require_permission") {
		c.Notifications.RequirePermission = other.Notifications.RequirePermission
	}
	if yamlHasPath(doc, "notifications", "channels") {
		c.Notifications.Channels = other.Notifications.Channels
	}
	if yamlHasPath(doc, "notifications", "sound") {
		c.Notifications.Sound = other.Notifications.Sound
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			v := n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.Value == key {
				next = v
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to the default config path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the configuration to path, creating its directory.
func (c *Config) SaveTo(path string) error {
	if path == "" {
		return nil
	}

	// Create config directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path.
func (c *Config) GetDataDir() string {
	if c.DataDir != "" {
		return expandHome(c.DataDir)
	}
	return defaultDataDir()
}

// GetLogFile returns the resolved log file path.
func (c *Config) GetLogFile() string {
	if c.Log.File != "" {
		return expandHome(c.Log.File)
	}
	return filepath.Join(c.GetDataDir(), appName+".log")
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(p string) string {
	if p == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			return home
		}
		return p
	}

	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		home, err := os.UserHomeDir()
		if err == nil {
			trimmed := strings.TrimPrefix(p, "~/")
			trimmed = strings.TrimPrefix(trimmed, `~\`)
			trimmed = strings.TrimPrefix(trimmed, `\`)
			return filepath.Join(home, trimmed)
		}
	}
	return p
}
