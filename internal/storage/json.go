package storage

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/pstuifzand/tui-treeselect/internal/model"
)

// parseJSON accepts either a document object or a bare array of nodes
func parseJSON(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var nodes []*model.Node
		if err := json.Unmarshal(trimmed, &nodes); err != nil {
			return nil, err
		}
		return &Document{Nodes: nodes}, nil
	}

	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func marshalJSON(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
