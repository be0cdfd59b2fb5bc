package storage

import (
	"bufio"
	"strings"

	"github.com/pstuifzand/tui-treeselect/internal/model"
)

// parseIndented reads an indentation-based outline. Each line is either
// "label" or "value: label", optionally prefixed with "[x] " or "[ ] " to
// set the initial checked flag. A first line starting with "# " sets the title.
func parseIndented(content string) (*Document, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))

	doc := &Document{}
	var stack []*model.Node // open ancestors, one per level
	first := true

	for scanner.Scan() {
		line := scanner.Text()
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}

		if first && strings.HasPrefix(text, "# ") {
			doc.Title = strings.TrimSpace(strings.TrimPrefix(text, "# "))
			first = false
			continue
		}
		first = false

		node := parseLine(text)
		level := getIndentLevel(line)
		if level > len(stack) {
			level = len(stack)
		}
		stack = stack[:level]

		if len(stack) == 0 {
			doc.Nodes = append(doc.Nodes, node)
		} else {
			stack[len(stack)-1].AddChild(node)
		}
		stack = append(stack, node)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseLine(text string) *model.Node {
	node := &model.Node{}

	switch {
	case strings.HasPrefix(text, "[x] "), strings.HasPrefix(text, "[X] "):
		node.Checked = model.Bool(true)
		text = strings.TrimSpace(text[4:])
	case strings.HasPrefix(text, "[ ] "):
		node.Checked = model.Bool(false)
		text = strings.TrimSpace(text[4:])
	}

	if value, label, ok := strings.Cut(text, ": "); ok && value != "" && !strings.ContainsAny(value, " \t") {
		node.Value = value
		node.Label = strings.TrimSpace(label)
	} else {
		node.Value = text
		node.Label = text
	}
	return node
}

// getIndentLevel calculates the indentation level (0-based)
// Counts tabs and spaces (tab = 2 spaces)
func getIndentLevel(line string) int {
	indent := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\t' {
			indent += 2
		} else if line[i] == ' ' {
			indent++
		} else {
			break
		}
	}
	return indent / 2
}
