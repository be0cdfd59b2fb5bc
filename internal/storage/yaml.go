package storage

import (
	"github.com/pstuifzand/tui-treeselect/internal/model"
	"gopkg.in/yaml.v3"
)

// parseYAML accepts either a document mapping or a bare sequence of nodes
func parseYAML(data []byte) (*Document, error) {
	var probe yaml.Node
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	if len(probe.Content) == 0 {
		return &Document{}, nil
	}

	top := probe.Content[0]
	if top.Kind == yaml.SequenceNode {
		var nodes []*model.Node
		if err := top.Decode(&nodes); err != nil {
			return nil, err
		}
		return &Document{Nodes: nodes}, nil
	}

	var doc Document
	if err := top.Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
