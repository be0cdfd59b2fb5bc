// Package export writes the harvested selection to files
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/ncruces/go-strftime"
	"github.com/pstuifzand/tui-treeselect/internal/model"
)

// DefaultDateFormat is used when no strftime format is configured
const DefaultDateFormat = "%Y-%m-%d %H:%M"

// Item is one selected leaf
type Item struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Depth int    `json:"depth"`
}

// Selection is the set of checked leaves at a point in time
type Selection struct {
	Title      string    `json:"title"`
	ExportedAt time.Time `json:"exported_at"`
	Items      []Item    `json:"items"`
}

// NewSelection builds a selection from checked leaf nodes, keeping their order
func NewSelection(title string, leaves []model.FlatNode, now time.Time) *Selection {
	items := make([]Item, 0, len(leaves))
	for _, leaf := range leaves {
		items = append(items, Item{Value: leaf.Value, Label: leaf.Label, Depth: leaf.TreeDepth})
	}
	return &Selection{Title: title, ExportedAt: now, Items: items}
}

// FormatMarkdown renders the selection as a markdown bullet list.
// Labels that differ from their value get the value appended in backticks.
func FormatMarkdown(sel *Selection, dateFormat string) string {
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}

	var sb strings.Builder

	title := sel.Title
	if strings.TrimSpace(title) == "" {
		title = "Selection"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "Exported %s, %d selected\n\n", strftime.Format(dateFormat, sel.ExportedAt), len(sel.Items))

	for _, item := range sel.Items {
		sb.WriteString("- ")
		sb.WriteString(item.Label)
		if item.Value != item.Label {
			fmt.Fprintf(&sb, " (`%s`)", item.Value)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToMarkdown exports the selection to a markdown file
func ToMarkdown(sel *Selection, dateFormat, filePath string) error {
	if err := os.WriteFile(filePath, []byte(FormatMarkdown(sel, dateFormat)), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}
	return nil
}

// ToJSON exports the selection to a JSON file
func ToJSON(sel *Selection, filePath string) error {
	data, err := json.MarshalIndent(sel, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}
	if err := os.WriteFile(filePath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write json file: %w", err)
	}
	return nil
}

// ToFile picks JSON for a .json extension and markdown otherwise
func ToFile(sel *Selection, dateFormat, filePath string) error {
	if strings.EqualFold(filepath.Ext(filePath), ".json") {
		return ToJSON(sel, filePath)
	}
	return ToMarkdown(sel, dateFormat, filePath)
}
