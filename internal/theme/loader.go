package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration
type ThemeConfig struct {
	Name   string            `toml:"name"`
	Colors map[string]string `toml:"colors"`
}

// colorSlots maps TOML color keys onto theme fields
func colorSlots(c *Colors) map[string]*tcell.Color {
	return map[string]*tcell.Color{
		"background":             &c.Background,
		"tree_normal_text":       &c.TreeNormalText,
		"tree_selected_item":     &c.TreeSelectedItem,
		"tree_selected_bg":       &c.TreeSelectedBg,
		"tree_arrow":             &c.TreeArrow,
		"tree_child_count":       &c.TreeChildCount,
		"checkbox_checked":       &c.CheckboxChecked,
		"checkbox_indeterminate": &c.CheckboxIndeterminate,
		"checkbox_unchecked":     &c.CheckboxUnchecked,
		"filter_label":           &c.FilterLabel,
		"filter_text":            &c.FilterText,
		"filter_cursor":          &c.FilterCursor,
		"command_prompt":         &c.CommandPrompt,
		"command_text":           &c.CommandText,
		"help_background":        &c.HelpBackground,
		"help_border":            &c.HelpBorder,
		"help_title":             &c.HelpTitle,
		"help_content":           &c.HelpContent,
		"status_mode":            &c.StatusMode,
		"status_message":         &c.StatusMessage,
		"header_title":           &c.HeaderTitle,
		"empty_state":            &c.EmptyState,
	}
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "tui-treeselect", "themes"),
			filepath.Join(home, ".local", "share", "tui-treeselect", "themes"),
		)
	}
	return paths
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config), nil
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}
	return LoadThemeFromFile(filePath)
}

// configToTheme converts a ThemeConfig to a Theme, with fallback to Tokyo Night for missing colors
func configToTheme(config ThemeConfig) *Theme {
	t := TokyoNight()

	slots := colorSlots(&t.Colors)
	for key, value := range config.Colors {
		if slot, ok := slots[key]; ok && value != "" {
			*slot = ParseColorString(value)
		}
	}

	if config.Name != "" {
		t.Name = config.Name
	}
	return t
}

// LoadThemeOrDefault loads a theme by name, or returns Tokyo Night if not found
func LoadThemeOrDefault(themeName string) *Theme {
	switch themeName {
	case "default":
		return Default()
	case "", "tokyo-night":
		return TokyoNight()
	}

	t, err := LoadTheme(themeName)
	if err != nil {
		return TokyoNight()
	}
	return t
}
