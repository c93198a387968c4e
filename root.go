package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/heathj/tagtree/config"
	"github.com/heathj/tagtree/fetch"
	"github.com/heathj/tagtree/parser"
	"github.com/heathj/tagtree/parser/spec"
	"github.com/heathj/tagtree/parser/tags"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	v   = config.New(".")
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tagtree",
	Short: "Build element trees from HTML and query them with selectors",
	Long: "tagtree splits an HTML document into tag tokens, nests them into an element tree " +
		"and resolves descendant selector chains such as `div#main p.note span` against it.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("policy", "", "Extra closing tag policy: strict or clamp")
	rootCmd.PersistentFlags().String("all-tags", "", "JSON file listing every known tag name")
	rootCmd.PersistentFlags().String("self-closing-tags", "", "JSON file listing void/self-closing tag names")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Timeout for fetching http(s) sources, 0 for none")

	_ = v.BindPFlag("LOG_LEVEL", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("UNBALANCED_POLICY", rootCmd.PersistentFlags().Lookup("policy"))
	_ = v.BindPFlag("ALL_TAGS_PATH", rootCmd.PersistentFlags().Lookup("all-tags"))
	_ = v.BindPFlag("SELF_CLOSING_TAGS_PATH", rootCmd.PersistentFlags().Lookup("self-closing-tags"))
	_ = v.BindPFlag("FETCH_TIMEOUT", rootCmd.PersistentFlags().Lookup("timeout"))
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = c

	lvl, _ := cfg.Level()
	logrus.SetLevel(lvl)
	logrus.SetOutput(cmd.ErrOrStderr())
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// tagTable loads the configured tag tables. Without them no tree can be built,
// so a failure ends the process.
func tagTable() *tags.Table {
	table, err := cfg.TagTable()
	if err != nil {
		logrus.WithError(err).Fatal("cannot load tag tables")
	}
	return table
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// withSource opens source (a file path, "-" for stdin, or an http(s) URL) and
// hands its contents to fn.
func withSource(ctx context.Context, source string, fn func(io.Reader) error) error {
	switch {
	case source == "-":
		return fn(os.Stdin)
	case isURL(source):
		ctx, cancel := cfg.FetchContext(ctx)
		defer cancel()
		body, err := fetch.Open(ctx, nil, source)
		if err != nil {
			return err
		}
		defer body.Close()
		return fn(body)
	default:
		f, err := os.Open(source)
		if err != nil {
			return errors.Wrap(err, "opening source")
		}
		defer f.Close()
		return fn(f)
	}
}

// buildTree parses source with the configured tag tables and policy. Class
// and id attributes are always extracted so selectors can use them.
func buildTree(ctx context.Context, source string) (*spec.Element, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	table := tagTable()

	var root *spec.Element
	err = withSource(ctx, source, func(r io.Reader) error {
		p := parser.NewParser(r, table,
			parser.WithUnbalancedPolicy(policy),
			parser.WithAttributes(),
			parser.WithLogger(logrus.WithFields(logrus.Fields{"component": "tree", "source": source})),
		)
		root, err = p.Start()
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "building tree from %s", source)
	}
	return root, nil
}
