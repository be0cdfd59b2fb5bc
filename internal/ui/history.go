package ui

import (
	"log"

	"github.com/pstuifzand/tui-treeselect/internal/history"
)

// History keeps prompt entries and a navigation cursor over them
type History struct {
	entries    []string
	index      int // -1 when not navigating
	maxEntries int
	pending    string // input typed before navigation started
	manager    *history.Manager
	filename   string
}

// NewHistory creates an in-memory History
func NewHistory(maxEntries int) *History {
	return &History{index: -1, maxEntries: maxEntries}
}

// NewHistoryWithManager creates a History backed by a history file.
// On a load error the returned History is empty but usable.
func NewHistoryWithManager(maxEntries int, manager *history.Manager, filename string) (*History, error) {
	h := NewHistory(maxEntries)
	h.manager = manager
	h.filename = filename

	entries, err := manager.Load(filename)
	if err != nil {
		return h, err
	}
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	h.entries = entries
	return h, nil
}

// Add appends entry unless it is empty or repeats the newest entry, and
// persists the history when a manager is attached
func (h *History) Add(entry string) {
	h.Reset()
	if entry == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return
	}

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
	}

	if err := h.Save(); err != nil {
		log.Printf("failed to save %s history: %v", h.filename, err)
	}
}

// Save persists the entries, a no-op without a manager
func (h *History) Save() error {
	if h.manager == nil || h.filename == "" {
		return nil
	}
	return h.manager.Save(h.filename, h.entries)
}

// Previous steps back in history. current is remembered on the first step
// so Next can restore it.
func (h *History) Previous(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.index < 0:
		h.pending = current
		h.index = len(h.entries) - 1
	case h.index > 0:
		h.index--
	}
	return h.entries[h.index], true
}

// Next steps forward, returning the pending input after the newest entry
func (h *History) Next() (string, bool) {
	if h.index < 0 {
		return "", false
	}
	h.index++
	if h.index >= len(h.entries) {
		pending := h.pending
		h.Reset()
		return pending, true
	}
	return h.entries[h.index], true
}

// Reset leaves navigation mode
func (h *History) Reset() {
	h.index = -1
	h.pending = ""
}

// GetAll returns a copy of all entries, oldest first
func (h *History) GetAll() []string {
	return append([]string(nil), h.entries...)
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}

// IsNavigating reports whether Previous has been called since the last Reset
func (h *History) IsNavigating() bool {
	return h.index >= 0
}
