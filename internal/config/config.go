package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const appName = "tui-treeselect"

// Config holds application configuration
type Config struct {
	Theme            string            `toml:"theme"`
	HideRoot         bool              `toml:"hide_root"`
	FilterMode       string            `toml:"filter_mode"`
	IndentWidth      int               `toml:"indent_width"`
	ExpandAll        bool              `toml:"expand_all"`
	DefaultChecked   []string          `toml:"default_checked"`
	ExportDateFormat string            `toml:"export_date_format"`
	Settings         map[string]string `toml:"settings"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil // Return default if can't find config path
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file
func LoadFromFile(filePath string) (*Config, error) {
	// If file doesn't exist, return default config
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := defaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	return config, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// Default returns the built-in configuration, used when no file can be read
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		Theme:            "tokyo-night",
		FilterMode:       "substring",
		IndentWidth:      2,
		ExportDateFormat: "%Y-%m-%d %H:%M",
		Settings:         make(map[string]string),
		sessionSettings:  make(map[string]string),
	}
}

func (c *Config) applyDefaults() {
	d := defaultConfig()
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	if c.FilterMode == "" {
		c.FilterMode = d.FilterMode
	}
	if c.IndentWidth <= 0 {
		c.IndentWidth = d.IndentWidth
	}
	if c.ExportDateFormat == "" {
		c.ExportDateFormat = d.ExportDateFormat
	}
	if c.Settings == nil {
		c.Settings = make(map[string]string)
	}
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(configDir, 0755)
}

// Set sets a session configuration value. Known keys also update the
// typed field for the rest of the session.
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value

	switch key {
	case "hide_root":
		c.HideRoot = parseBool(value)
	case "expand_all":
		c.ExpandAll = parseBool(value)
	case "filter_mode":
		c.FilterMode = value
	case "indent_width":
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			c.IndentWidth = n
		}
	case "theme":
		c.Theme = value
	case "export_date_format":
		c.ExportDateFormat = value
	case "default_checked":
		c.DefaultChecked = splitList(value)
	}
}

// splitList parses a comma separated list, dropping empty items
func splitList(value string) []string {
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && b
}

// Get retrieves a configuration value, checking session settings first (which override persisted settings)
// Returns empty string if not found in either source
func (c *Config) Get(key string) string {
	if c.sessionSettings != nil {
		if val, ok := c.sessionSettings[key]; ok {
			return val
		}
	}

	if c.Settings != nil {
		if val, ok := c.Settings[key]; ok {
			return val
		}
	}

	return ""
}

// GetAll returns all configuration values (both persisted and session)
// Session settings override persisted settings with the same key
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string)

	for k, v := range c.Settings {
		result[k] = v
	}
	for k, v := range c.sessionSettings {
		result[k] = v
	}

	return result
}

// SaveTo persists the configuration to the given TOML file
// Note: session settings are not written
func (c *Config) SaveTo(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Save persists the configuration to the standard location
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return c.SaveTo(configPath)
}
