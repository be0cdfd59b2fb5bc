// Package history persists prompt input history between sessions
package history

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FilterFile is the history file used by the filter prompt
const FilterFile = "filter.toml"

// CommandFile is the history file used by the command line
const CommandFile = "command.toml"

// MaxEntries bounds the number of entries written to disk
const MaxEntries = 100

// Manager handles loading and saving history to TOML files
type Manager struct {
	historyDir string
}

// HistoryFile represents the structure of a history TOML file
type HistoryFile struct {
	Entries []string `toml:"entries"`
}

// NewManager creates a history manager rooted at ~/.local/share/tui-treeselect/history/
func NewManager() (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find home directory: %w", err)
	}
	return NewManagerAt(filepath.Join(homeDir, ".local", "share", "tui-treeselect", "history"))
}

// NewManagerAt creates a history manager storing files in dir
func NewManagerAt(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &Manager{historyDir: dir}, nil
}

// Load loads history entries from a TOML file.
// A missing or corrupted file yields an empty history.
func (m *Manager) Load(filename string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(m.historyDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var histFile HistoryFile
	if err := toml.Unmarshal(data, &histFile); err != nil {
		return []string{}, nil
	}
	if histFile.Entries == nil {
		return []string{}, nil
	}
	return histFile.Entries, nil
}

// Save saves the newest MaxEntries history entries to a TOML file
func (m *Manager) Save(filename string, entries []string) error {
	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}

	data, err := toml.Marshal(HistoryFile{Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.historyDir, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}
