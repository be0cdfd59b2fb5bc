// Package storage loads input trees from disk
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/tui-treeselect/internal/model"
)

// Format identifies the on-disk encoding of a tree file
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatIndented Format = "indented"
)

// ErrUnsupportedFormat is returned for an unknown Format
var ErrUnsupportedFormat = errors.New("unsupported tree format")

// Document is a loaded tree file
type Document struct {
	Title string        `json:"title,omitempty" yaml:"title,omitempty"`
	Nodes []*model.Node `json:"nodes" yaml:"nodes"`
}

// DetectFormat picks a format from the file extension, defaulting to indented text
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatIndented
	}
}

// Parse decodes data in the given format, wraps the result under a root
// node when needed and validates it.
func Parse(data []byte, format Format) (*Document, error) {
	var (
		doc *Document
		err error
	)

	switch format {
	case FormatJSON:
		doc, err = parseJSON(data)
	case FormatYAML:
		doc, err = parseYAML(data)
	case FormatIndented:
		doc, err = parseIndented(string(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s tree: %w", format, err)
	}

	doc.Nodes = EnsureRoot(doc.Title, doc.Nodes)
	if err := model.Validate(doc.Nodes); err != nil {
		return nil, fmt.Errorf("invalid tree: %w", err)
	}
	return doc, nil
}

// Load reads and parses a tree file, detecting the format from its extension
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file: %w", err)
	}

	doc, err := Parse(data, DetectFormat(path))
	if err != nil {
		return nil, err
	}
	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// EnsureRoot returns nodes unchanged when they already consist of a single
// root node, otherwise it wraps them in a new expanded root.
func EnsureRoot(title string, nodes []*model.Node) []*model.Node {
	if len(nodes) == 1 && nodes[0] != nil && nodes[0].Value == model.Root {
		return nodes
	}
	if title == "" {
		title = "All"
	}
	root := &model.Node{Value: model.Root, Label: title, Expanded: model.Bool(true)}
	for _, n := range nodes {
		if n != nil {
			root.AddChild(n)
		}
	}
	return []*model.Node{root}
}

// SaveJSON writes a document as indented JSON, creating the directory if needed
func SaveJSON(path string, doc *Document) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := marshalJSON(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
