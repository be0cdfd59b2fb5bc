package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pstuifzand/tui-treeselect/internal/model"
	"github.com/pstuifzand/tui-treeselect/internal/storage"
)

func main() {
	numNodes := flag.Int("nodes", 1000, "Number of nodes to generate")
	output := flag.String("output", "large_test.json", "Output file path")
	depth := flag.Int("depth", 3, "Maximum nesting depth")
	title := flag.String("title", "Generated", "Root label")
	flag.Parse()

	if *numNodes < 1 {
		fmt.Fprintf(os.Stderr, "nodes must be at least 1\n")
		os.Exit(1)
	}

	root := generateTree(*numNodes, *depth, *title)
	doc := &storage.Document{Title: *title, Nodes: []*model.Node{root}}

	if err := storage.SaveJSON(*output, doc); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write file: %v\n", err)
		os.Exit(1)
	}

	info, err := os.Stat(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to stat file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated tree with %d nodes\n", model.Count(doc.Nodes))
	fmt.Printf("Saved to: %s\n", *output)
	fmt.Printf("File size: %.2f MB\n", float64(info.Size())/(1024*1024))
}

// generateTree builds a root with totalNodes descendants spread over
// maxDepth levels
func generateTree(totalNodes int, maxDepth int, title string) *model.Node {
	root := &model.Node{Value: model.Root, Label: title, Expanded: model.Bool(true)}

	remaining := totalNodes
	for remaining > 0 {
		if node := generateNodeRecursive(&remaining, 1, maxDepth); node != nil {
			root.AddChild(node)
		}
	}
	return root
}

func generateNodeRecursive(remaining *int, currentDepth int, maxDepth int) *model.Node {
	if *remaining <= 0 {
		return nil
	}

	index := *remaining
	node := model.NewNode(fmt.Sprintf("node-%d", index), generateLabel(index))
	*remaining--

	if currentDepth < maxDepth && *remaining > 0 {
		numChildren := getChildCount(*remaining, maxDepth-currentDepth)
		for i := 0; i < numChildren && *remaining > 0; i++ {
			if child := generateNodeRecursive(remaining, currentDepth+1, maxDepth); child != nil {
				node.AddChild(child)
			}
		}
	}

	return node
}

func getChildCount(remaining int, depthLeft int) int {
	if depthLeft == 1 {
		if remaining > 10 {
			return 5
		}
		return max(remaining/2, 1)
	}
	if remaining > 50 {
		return 3
	}
	return 2
}

func generateLabel(index int) string {
	categories := []string{
		"Fruit", "Vegetable", "Animal", "City", "Country", "Colour",
		"Language", "Instrument", "Planet", "Tool",
	}
	descriptions := []string{
		"north", "south", "east", "west", "small", "large",
		"red", "blue", "green", "old", "new", "common", "rare",
	}

	return fmt.Sprintf("%s #%d %s", categories[index%len(categories)], index,
		descriptions[index%len(descriptions)])
}
