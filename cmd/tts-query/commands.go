package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/pstuifzand/tui-treeselect/internal/model"
	"github.com/pstuifzand/tui-treeselect/internal/storage"
	"github.com/pstuifzand/tui-treeselect/internal/treestate"
	"github.com/spf13/cobra"
)

// queryFlags are shared by every subcommand
type queryFlags struct {
	keyword    string
	filterMode string
	checked    []string
	jsonOut    bool
}

func newRootCmd() *cobra.Command {
	flags := &queryFlags{}

	rootCmd := &cobra.Command{
		Use:           "tts-query",
		Short:         "Query tree files the way the selector sees them",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&flags.keyword, "keyword", "k", "", "Filter keyword")
	rootCmd.PersistentFlags().StringVar(&flags.filterMode, "filter-mode", "substring", "Filter matcher: substring or fuzzy")
	rootCmd.PersistentFlags().StringSliceVarP(&flags.checked, "checked", "c", nil, "Values to check before querying")
	rootCmd.PersistentFlags().BoolVar(&flags.jsonOut, "json", false, "Output JSON")

	rootCmd.AddCommand(
		newListCmd(flags),
		newLeavesCmd(flags),
		newHiddenCmd(flags),
	)
	return rootCmd
}

func newListCmd(flags *queryFlags) *cobra.Command {
	var (
		hideRoot  bool
		expandAll bool
	)

	cmd := &cobra.Command{
		Use:   "list <tree-file>",
		Short: "Print the rows the selector would show",
		Long: `Print the projected rows of a tree file: nodes that are visible
and not under a collapsed ancestor, in pre-order.

Examples:
  tts-query list animals.yaml
  tts-query list animals.yaml --keyword dog --hide-root`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(args[0], flags)
			if err != nil {
				return err
			}
			if expandAll {
				store.ExpandAllNodes(true)
			}

			rows := store.GenerateNodesArray(hideRoot)
			if flags.jsonOut {
				return writeJSON(cmd.OutOrStdout(), rows)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, row := range rows {
				fmt.Fprintf(w, "%s%s %s\t%s\n", strings.Repeat("  ", row.TreeDepth), checkbox(row.CheckState), row.Label, row.Value)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&hideRoot, "hide-root", false, "Leave out the root row")
	cmd.Flags().BoolVar(&expandAll, "expand-all", false, "Expand every parent first")
	return cmd
}

func newLeavesCmd(flags *queryFlags) *cobra.Command {
	var (
		depth   int
		checked bool
	)

	cmd := &cobra.Command{
		Use:   "leaves <tree-file>",
		Short: "Print leaf nodes",
		Long: `Print leaf nodes in pre-order. With --checked only checked leaves
are printed, optionally restricted to one depth.

Examples:
  tts-query leaves animals.yaml
  tts-query leaves animals.yaml --checked-only -c potato
  tts-query leaves animals.yaml --checked-only --depth 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(args[0], flags)
			if err != nil {
				return err
			}

			var leaves []model.FlatNode
			switch {
			case checked && depth >= 0:
				leaves = store.GetCheckedLeafNodesAtDepth(depth)
			case checked:
				leaves = store.GetCheckedLeafNodes()
			default:
				leaves = store.GetAllLeafsNodes()
			}
			return writeNodes(cmd.OutOrStdout(), leaves, flags.jsonOut)
		},
	}
	cmd.Flags().IntVar(&depth, "depth", -1, "Only checked leaves at this tree depth")
	cmd.Flags().BoolVar(&checked, "checked-only", false, "Only checked leaves")
	return cmd
}

func newHiddenCmd(flags *queryFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "hidden <tree-file>",
		Short: "Print the nodes a keyword filters out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.keyword == "" {
				return fmt.Errorf("hidden requires --keyword")
			}
			store, err := loadStore(args[0], flags)
			if err != nil {
				return err
			}

			visible := make(map[string]bool)
			for _, n := range store.GetAllVisibleNodes() {
				visible[n.Value] = true
			}

			var hidden []model.FlatNode
			for _, n := range store.GetAllNodes() {
				if !visible[n.Value] {
					hidden = append(hidden, n)
				}
			}
			return writeNodes(cmd.OutOrStdout(), hidden, flags.jsonOut)
		},
	}
}

// loadStore reads a tree file and applies the checked values and keyword
func loadStore(path string, flags *queryFlags) (*treestate.Store, error) {
	doc, err := storage.Load(path)
	if err != nil {
		return nil, err
	}

	store := treestate.New(treestate.WithMatcher(treestate.MatcherByName(flags.filterMode)))
	store.FlattenNodes(doc.Nodes)
	for _, value := range flags.checked {
		if _, ok := store.GetNode(value); !ok {
			return nil, fmt.Errorf("unknown value %q", value)
		}
		store.Check(value, true)
	}
	if flags.keyword != "" {
		store.FilterNodesByKeyword(flags.keyword)
	}
	return store, nil
}

func writeNodes(w io.Writer, nodes []model.FlatNode, jsonOut bool) error {
	if jsonOut {
		return writeJSON(w, nodes)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, n := range nodes {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", n.Value, n.Label, n.TreeDepth)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func checkbox(state model.CheckState) string {
	switch state {
	case model.Checked:
		return "[x]"
	case model.Indeterminate:
		return "[-]"
	default:
		return "[ ]"
	}
}
