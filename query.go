package main

import (
	"fmt"
	"strings"

	"github.com/heathj/tagtree/selector"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <source> <selector>...",
	Short: "Print the elements a selector chain matches",
	Long: "Build the tree for source and print every element matched by the selector chain. " +
		"With --raw-names each remaining argument is one stage matched against raw tag tokens.",
	Args: cobra.MinimumNArgs(2),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().Bool("unique", false, "Report each element once instead of once per matching path")
	queryCmd.Flags().Bool("raw-names", false, "Match stages against raw tag tokens instead of tag names")
	queryCmd.Flags().Bool("subtree", false, "Print the subtree below each match")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	unique, _ := cmd.Flags().GetBool("unique")
	rawNames, _ := cmd.Flags().GetBool("raw-names")
	subtree, _ := cmd.Flags().GetBool("subtree")

	var (
		sel     *selector.Selector
		matcher selector.Matcher
	)
	if rawNames {
		stages := make([]*selector.Selector, 0, len(args)-1)
		for _, token := range args[1:] {
			stages = append(stages, selector.New(token))
		}
		sel = selector.Chain(stages...)
		matcher.Names = selector.MatchRawToken
	} else {
		var err error
		sel, err = selector.Parse(strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
	}

	root, err := buildTree(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	policy := selector.OrderedList
	if unique {
		policy = selector.DeduplicatedSet
	}
	out := cmd.OutOrStdout()
	for _, e := range matcher.Match(root, sel, policy) {
		if subtree {
			fmt.Fprintln(out, e.String())
			continue
		}
		fmt.Fprintln(out, e.Name)
	}
	return nil
}
