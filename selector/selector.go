// Package selector describes chained element selectors and resolves them
// against trees built by package parser.
//
// A selector is a chain of stages. Each stage matches on tag name, id and a
// required set of classes; the next stage is searched for anywhere below an
// element the previous stage matched, like the CSS descendant combinator.
//
// Usage:
//
//	root, _ := parser.ParseString(html, tags.MustDefault(), parser.WithAttributes())
//	sel, _ := selector.Parse("div#main p.note span")
//	for _, e := range selector.FindAll(root, sel) {
//	    fmt.Println(e.Name)
//	}
package selector

import (
	"strings"
)

// Selector is one stage of a chain. A zero TagName matches any tag and a nil
// ID matches any id. A non-nil ID must equal the element's id exactly; an
// element without an id only matches the empty string.
type Selector struct {
	TagName string
	ID      *string
	Classes []string

	// Child is the next stage, searched for below each match of this one.
	Child *Selector
	// Parent points back at the previous stage. It is informational only.
	Parent *Selector
}

// New returns a stage matching tagName and every class given.
func New(tagName string, classes ...string) *Selector {
	return &Selector{TagName: tagName, Classes: classes}
}

// WithID sets the stage's id filter and returns the stage.
func (s *Selector) WithID(id string) *Selector {
	s.ID = &id
	return s
}

// Then links child as the next stage and returns child, so chains read left to
// right: New("ul").Then(New("li")).
func (s *Selector) Then(child *Selector) *Selector {
	s.Child = child
	child.Parent = s
	return child
}

// Chain links the stages in order and returns the first.
func Chain(stages ...*Selector) *Selector {
	if len(stages) == 0 {
		return nil
	}
	for i := 1; i < len(stages); i++ {
		stages[i-1].Then(stages[i])
	}
	return stages[0]
}

// Head walks Parent links back to the first stage.
func (s *Selector) Head() *Selector {
	for s.Parent != nil {
		s = s.Parent
	}
	return s
}

// Len is the number of stages from s to the end of the chain.
func (s *Selector) Len() int {
	n := 0
	for ; s != nil; s = s.Child {
		n++
	}
	return n
}

func (s *Selector) compound() string {
	var b strings.Builder
	b.WriteString(s.TagName)
	if s.ID != nil {
		b.WriteString("#" + *s.ID)
	}
	for _, c := range s.Classes {
		b.WriteString("." + c)
	}
	if b.Len() == 0 {
		return "*"
	}
	return b.String()
}

// String renders the chain from s onwards in query syntax.
func (s *Selector) String() string {
	var parts []string
	for ; s != nil; s = s.Child {
		parts = append(parts, s.compound())
	}
	return strings.Join(parts, " ")
}
