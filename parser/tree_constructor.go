package parser

import (
	"fmt"
	"strings"

	"github.com/heathj/tagtree/parser/spec"
	"github.com/heathj/tagtree/parser/tags"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrUnbalancedTag is returned when a closing tag arrives while the cursor is
// already at the root.
var ErrUnbalancedTag = errors.New("closing tag without a matching open element")

// UnbalancedPolicy decides what an extra closing tag does.
type UnbalancedPolicy uint

const (
	// Strict stops the build with ErrUnbalancedTag.
	Strict UnbalancedPolicy = iota
	// Clamp ignores the closing tag and keeps the cursor at the root.
	Clamp
)

func (p UnbalancedPolicy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Clamp:
		return "clamp"
	default:
		return fmt.Sprintf("UnbalancedPolicy(%d)", uint(p))
	}
}

// ParseUnbalancedPolicy maps "strict" or "clamp" (any case) to a policy.
func ParseUnbalancedPolicy(s string) (UnbalancedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return Strict, nil
	case "clamp":
		return Clamp, nil
	default:
		return Strict, errors.Errorf("unknown unbalanced tag policy %q", s)
	}
}

// Option configures an HTMLTreeConstructor.
type Option func(*HTMLTreeConstructor)

func WithUnbalancedPolicy(p UnbalancedPolicy) Option {
	return func(c *HTMLTreeConstructor) {
		c.policy = p
	}
}

// WithAttributes makes the constructor extract attributes, classes and ids
// from each token as its element is created.
func WithAttributes() Option {
	return func(c *HTMLTreeConstructor) {
		c.attributes = true
	}
}

// WithLogger replaces the entry debug messages about unknown tags and
// unbalanced input are written to.
func WithLogger(l *logrus.Entry) Option {
	return func(c *HTMLTreeConstructor) {
		c.log = l
	}
}

// HTMLTreeConstructor turns a stream of tag tokens into an element tree. It
// keeps a single cursor, the current open element: opening tags attach below
// it and move it down, closing tags move it back up to its parent.
type HTMLTreeConstructor struct {
	tags       *tags.Table
	root       *spec.Element
	current    *spec.Element
	policy     UnbalancedPolicy
	attributes bool
	log        *logrus.Entry
	processed  int
}

// NewHTMLTreeConstructor creates a constructor with an empty tree. The table
// decides which tags are void; it is read but never modified. A nil table
// means the embedded default tables.
func NewHTMLTreeConstructor(table *tags.Table, opts ...Option) *HTMLTreeConstructor {
	if table == nil {
		table = tags.MustDefault()
	}
	root := spec.NewRoot()
	c := &HTMLTreeConstructor{
		tags:    table,
		root:    root,
		current: root,
		log:     logrus.WithField("component", "tree"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProcessToken applies one token to the tree.
func (c *HTMLTreeConstructor) ProcessToken(token string) error {
	index := c.processed
	c.processed++

	if IsEndTag(token) {
		return c.closeElement(token, index)
	}

	name := TagNameOf(token)
	e := spec.NewElement(token, name)
	if c.attributes {
		applyAttributes(e)
	}
	c.current.AppendChild(e)

	if !c.tags.IsKnown(name) {
		c.log.WithFields(logrus.Fields{"token": token, "index": index}).Debug("unknown tag")
	}
	if HasSelfClosingSyntax(token) || c.tags.IsSelfClosing(name) {
		return nil
	}
	c.current = e
	return nil
}

func (c *HTMLTreeConstructor) closeElement(token string, index int) error {
	if c.current == c.root {
		if c.policy == Clamp {
			c.log.WithFields(logrus.Fields{"token": token, "index": index}).Debug("ignoring closing tag at root")
			return nil
		}
		return errors.Wrapf(ErrUnbalancedTag, "token %d %q", index, token)
	}
	c.current = c.current.Parent()
	return nil
}

// Root returns the synthetic root of the tree built so far.
func (c *HTMLTreeConstructor) Root() *spec.Element {
	return c.root
}

// CurrentNode returns the element new tokens are attached under.
func (c *HTMLTreeConstructor) CurrentNode() *spec.Element {
	return c.current
}

// Depth is the number of elements still open at the cursor.
func (c *HTMLTreeConstructor) Depth() int {
	return c.current.Depth()
}

// BuildTree runs every token through a fresh constructor and returns the
// root. Elements left open at the end stay in the tree as they are. With the
// Strict policy an unmatched closing tag aborts the build and no tree is
// returned.
func BuildTree(tokens []string, table *tags.Table, opts ...Option) (*spec.Element, error) {
	c := NewHTMLTreeConstructor(table, opts...)
	for _, t := range tokens {
		if err := c.ProcessToken(t); err != nil {
			return nil, err
		}
	}
	if d := c.Depth(); d > 0 {
		c.log.WithField("open", d).Debug("elements left open at end of input")
	}
	return c.root, nil
}
