package main

import (
	"fmt"
	"io"

	"github.com/heathj/tagtree/parser"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <source>",
	Short: "Print the tag tokens of a document, one per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		return withSource(cmd.Context(), args[0], func(r io.Reader) error {
			p := parser.NewHTMLTokenizer(r)
			for p.Next() {
				fmt.Fprintln(out, p.Token())
			}
			return p.Err()
		})
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree <source>",
	Short: "Print the element tree of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := buildTree(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), root.String())
		return nil
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the loaded tag tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		selfClosing, _ := cmd.Flags().GetBool("self-closing")
		table := tagTable()
		names := table.AllTags()
		if selfClosing {
			names = table.SelfClosingTags()
		}
		out := cmd.OutOrStdout()
		for _, n := range names {
			fmt.Fprintln(out, n)
		}
		return nil
	},
}

func init() {
	tagsCmd.Flags().Bool("self-closing", false, "Only list void/self-closing tags")

	rootCmd.AddCommand(tokensCmd, treeCmd, tagsCmd)
}
