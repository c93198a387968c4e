package parser

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/heathj/tagtree/parser/spec"
	"github.com/heathj/tagtree/parser/tags"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultTable = tags.MustDefault()

type treeTest struct {
	in       string
	expected string
}

func parseTests(t *testing.T) []treeTest {
	data, err := os.ReadFile("./testdata/tree_construction/basic.dat")
	require.NoError(t, err)

	var treeTests []treeTest
	for i, test := range strings.Split(string(data), "#data\n") {
		if i == 0 {
			continue
		}
		tt := treeTest{}
		var expected []string
		inDocument := false
		for _, s := range strings.Split(test, "\n") {
			switch {
			case s == "#document":
				inDocument = true
			case inDocument && len(s) > 0:
				expected = append(expected, s)
			case !inDocument:
				tt.in += s + "\n"
			}
		}
		tt.in = strings.TrimSuffix(tt.in, "\n")
		tt.expected = strings.Join(expected, "\n")
		treeTests = append(treeTests, tt)
	}
	return treeTests
}

func TestTreeConstructor(t *testing.T) {
	tests := parseTests(t)
	require.NotEmpty(t, tests)

	for _, test := range tests {
		test := test
		t.Run(test.in, func(t *testing.T) {
			t.Parallel()
			root, err := ParseString(test.in, defaultTable, WithAttributes())
			require.NoError(t, err)
			if diff := cmp.Diff(test.expected, root.String()); diff != "" {
				t.Errorf("Wrong document (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStreamingParserMatchesBuildTree(t *testing.T) {
	for _, test := range parseTests(t) {
		test := test
		t.Run(test.in, func(t *testing.T) {
			t.Parallel()
			root, err := NewParser(strings.NewReader(test.in), defaultTable, WithAttributes()).Start()
			require.NoError(t, err)
			assert.Equal(t, test.expected, root.String())
		})
	}
}

func TestBuildTreeIsDeterministic(t *testing.T) {
	html := `<html><body><div class="x"><p>a<br>b</p><img src=1><p></p></div></body></html>`
	first, err := ParseString(html, defaultTable, WithAttributes())
	require.NoError(t, err)
	second, err := ParseString(html, defaultTable, WithAttributes())
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, first.Descendants().Names(), second.Descendants().Names())
}

func TestBalancedTreeDepths(t *testing.T) {
	// N nested opens followed by N closes, plus siblings at several levels.
	tokens := []string{
		"<a>", "<b>", "<c>", "</c>", "<d>", "</d>", "</b>", "</a>",
		"<e>", "<f>", "</f>", "</e>",
	}
	wantDepth := map[string]int{"a": 1, "b": 2, "c": 3, "d": 3, "e": 1, "f": 2}

	root, err := BuildTree(tokens, defaultTable)
	require.NoError(t, err)

	all := root.Descendants()
	require.Len(t, all, len(wantDepth))
	for _, e := range all {
		assert.Equal(t, wantDepth[e.TagName], e.Depth(), e.Name)
		assert.Same(t, root, e.Ancestors()[len(e.Ancestors())-1], e.Name)
	}
}

func TestSelfClosingNeverBecomesCursor(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
	}{
		{"void_from_table", []string{"<div>", "<br>", "<span>"}},
		{"void_upper_case", []string{"<div>", "<HR>", "<span>"}},
		{"slash_syntax", []string{"<div>", "<widget/>", "<span>"}},
		{"slash_syntax_with_attributes", []string{"<div>", `<x-icon name="a" />`, "<span>"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := NewHTMLTreeConstructor(defaultTable)
			require.NoError(t, c.ProcessToken(tt.tokens[0]))
			div := c.CurrentNode()

			require.NoError(t, c.ProcessToken(tt.tokens[1]))
			assert.Same(t, div, c.CurrentNode())

			require.NoError(t, c.ProcessToken(tt.tokens[2]))
			require.Len(t, div.Children, 2)
			void, span := div.Children[0], div.Children[1]
			assert.Empty(t, void.Children)
			assert.Same(t, div, void.Parent())
			assert.Same(t, div, span.Parent())
		})
	}
}

func TestUnbalancedClosingTags(t *testing.T) {
	tokens := []string{"<div>", "</div>", "</div>", "<p>"}

	t.Run("strict", func(t *testing.T) {
		root, err := BuildTree(tokens, defaultTable)
		require.Error(t, err)
		assert.Nil(t, root)
		assert.True(t, errors.Is(err, ErrUnbalancedTag))
		assert.Equal(t, ErrUnbalancedTag, errors.Cause(err))
		assert.Contains(t, err.Error(), "token 2")
	})

	t.Run("strict_is_default_policy", func(t *testing.T) {
		c := NewHTMLTreeConstructor(defaultTable)
		assert.ErrorIs(t, c.ProcessToken("</html>"), ErrUnbalancedTag)
		assert.Empty(t, c.Root().Children)
	})

	t.Run("clamp", func(t *testing.T) {
		root, err := BuildTree(tokens, defaultTable, WithUnbalancedPolicy(Clamp))
		require.NoError(t, err)
		assert.Equal(t, "#root\n| <div>\n| <p>", root.String())
	})

	t.Run("balanced", func(t *testing.T) {
		for _, policy := range []UnbalancedPolicy{Strict, Clamp} {
			root, err := BuildTree([]string{"<div>", "</div>", "<p>", "</p>"}, defaultTable, WithUnbalancedPolicy(policy))
			require.NoError(t, err, policy.String())
			assert.Equal(t, []string{"div", "p"}, root.Descendants().TagNames(), policy.String())
		}
	})
}

func TestDanglingOpenElementsStayAttached(t *testing.T) {
	c := NewHTMLTreeConstructor(defaultTable)
	for _, tok := range Tokenize("<html><body><main><p>") {
		require.NoError(t, c.ProcessToken(tok))
	}
	assert.Equal(t, 4, c.Depth())

	root := c.Root()
	assert.True(t, root.IsRoot())
	assert.Equal(t, []string{"html", "body", "main", "p"}, root.Descendants().TagNames())
}

func TestParseUnbalancedPolicy(t *testing.T) {
	for in, want := range map[string]UnbalancedPolicy{"": Strict, "strict": Strict, "CLAMP": Clamp, " clamp ": Clamp} {
		got, err := ParseUnbalancedPolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseUnbalancedPolicy("ignore")
	assert.Error(t, err)
}

func TestConcreteScenarioTree(t *testing.T) {
	html := `<div><p class="a"><span></span></p></div>`
	root, err := BuildTree(Tokenize(html), defaultTable)
	require.NoError(t, err)

	require.Len(t, root.Children, 1)
	div := root.Children[0]
	require.Len(t, div.Children, 1)
	p := div.Children[0]
	require.Len(t, p.Children, 1)
	span := p.Children[0]

	assert.Equal(t, "<div>", div.Name)
	assert.Equal(t, `<p class="a">`, p.Name)
	assert.Equal(t, "<span>", span.Name)
	assert.Empty(t, p.Classes, "classes are only filled on request")

	PopulateAttributes(root)
	assert.Equal(t, []string{"a"}, p.Classes)
	assert.Equal(t, []string{`class="a"`}, p.Attributes)
	assert.Same(t, p, span.Parent())
	assert.Equal(t, spec.ElementList{p, div, root}, span.Ancestors())
}

func TestNilTableUsesDefaults(t *testing.T) {
	root, err := BuildTree([]string{"<div>", "<br>", "<span>", "</span>", "</div>"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "#root\n| <div>\n|   <br>\n|   <span>", root.String())
}

func TestDebugLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	log := logrus.NewEntry(logger)

	_, err := BuildTree([]string{"<div>", "<made-up>", "</made-up>", "</div>", "</div>", "<p>"}, defaultTable,
		WithLogger(log), WithUnbalancedPolicy(Clamp))
	require.NoError(t, err)

	entries := hook.AllEntries()
	require.Len(t, entries, 3)

	assert.Equal(t, "unknown tag", entries[0].Message)
	assert.Equal(t, "<made-up>", entries[0].Data["token"])
	assert.Equal(t, 1, entries[0].Data["index"])

	assert.Equal(t, "ignoring closing tag at root", entries[1].Message)
	assert.Equal(t, 4, entries[1].Data["index"])

	assert.Equal(t, "elements left open at end of input", entries[2].Message)
	assert.Equal(t, 1, entries[2].Data["open"])

	hook.Reset()
	logger.SetLevel(logrus.InfoLevel)
	_, err = BuildTree([]string{"<made-up>"}, defaultTable, WithLogger(log))
	require.NoError(t, err)
	assert.Empty(t, hook.AllEntries())
}
