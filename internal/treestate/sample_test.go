package treestate

import (
	"fmt"
	"testing"

	"github.com/pstuifzand/tui-treeselect/internal/model"
	"github.com/stretchr/testify/require"
)

// sampleTree builds
//
//	root
//	  Potato
//	    Bird
//	    Cat
//	    Dog
//	      human
//	        xxx
//	          yyy
//	            xxx-yyy-0 .. xxx-yyy-(deep-1)
//	      human-0 .. human-(humans-1)
//	  Apple
func sampleTree(humans, deep int) []*model.Node {
	yyy := model.NewNode("yyy", "yyy")
	for i := 0; i < deep; i++ {
		v := fmt.Sprintf("xxx-yyy-%d", i)
		yyy.AddChild(model.NewNode(v, v))
	}
	human := model.NewNode("Human", "human").AddChild(
		model.NewNode("xxx", "xxx").AddChild(yyy),
	)

	dog := model.NewNode("dog", "Dog").AddChild(human)
	for i := 0; i < humans; i++ {
		v := fmt.Sprintf("human-%d", i)
		dog.AddChild(model.NewNode(v, v))
	}

	root := &model.Node{Value: model.Root, Label: "root", Checked: model.Bool(true)}
	root.AddChild(
		model.NewNode("potato", "Potato").AddChild(
			model.NewNode("bird", "Bird"),
			model.NewNode("cat", "Cat"),
			dog,
		),
		model.NewNode("apple", "Apple"),
	)
	return []*model.Node{root}
}

func newSampleStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	s.FlattenNodes(sampleTree(100, 300))
	require.Equal(t, 1+1+3+1+1+1+300+100+1, s.Len())
	return s
}

func mustNode(t *testing.T, s *Store, value string) model.FlatNode {
	t.Helper()
	node, ok := s.GetNode(value)
	require.Truef(t, ok, "node %q not found", value)
	return node
}

func values(nodes []model.FlatNode) []string {
	result := make([]string, 0, len(nodes))
	for _, n := range nodes {
		result = append(result, n.Value)
	}
	return result
}
