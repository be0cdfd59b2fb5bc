package treestate

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pstuifzand/tui-treeselect/internal/model"
	"golang.org/x/text/cases"
)

// Matcher decides whether a node label matches a filter keyword
type Matcher interface {
	Match(keyword, label string) bool
	Name() string
}

// SubstringMatcher matches unanchored, case-insensitive substrings.
// Case folding is Unicode-aware, so "STRASSE" matches "Straße".
type SubstringMatcher struct{}

func (SubstringMatcher) Match(keyword, label string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(label), fold.String(keyword))
}

func (SubstringMatcher) Name() string {
	return "substring"
}

// FuzzyMatcher matches when the keyword's characters appear in order in
// the label, ignoring case.
type FuzzyMatcher struct{}

func (FuzzyMatcher) Match(keyword, label string) bool {
	return fuzzy.MatchFold(keyword, label)
}

func (FuzzyMatcher) Name() string {
	return "fuzzy"
}

// MatcherByName returns the matcher for a filter mode name, falling back to
// substring matching for unknown names.
func MatcherByName(name string) Matcher {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fuzzy":
		return FuzzyMatcher{}
	default:
		return SubstringMatcher{}
	}
}

// FilterNodesByKeyword hides every non-root node whose label does not match
// keyword, unless it is an ancestor or descendant of a match. An empty
// keyword makes every node visible again.
func (s *Store) FilterNodesByKeyword(keyword string) {
	if keyword == "" {
		for value, node := range s.nodes {
			if value != model.Root {
				node.Visible = true
			}
		}
		return
	}

	var matches []*model.FlatNode
	for value, node := range s.nodes {
		if value == model.Root {
			continue
		}
		node.Visible = false
		if s.matcher.Match(keyword, node.Label) {
			matches = append(matches, node)
		}
	}

	show := func(n *model.FlatNode) { n.Visible = true }
	for _, node := range matches {
		s.cascadeUp(node, show)
		if node.IsParent {
			s.cascadeDown(node, show)
		}
	}
}
