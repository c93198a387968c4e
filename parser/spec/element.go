package spec

import (
	"strings"
)

// Element is a single tag instance in the document tree. The root of every
// tree is a synthetic element created by NewRoot; it has no name and is never
// matched by a selector.
type Element struct {
	// Name is the raw tag token exactly as it was captured, angle brackets and
	// attributes included.
	Name string
	// TagName is the bare, lower-cased tag name taken from Name.
	TagName      string
	Attributes   []string
	Classes      []string
	ID           *string
	InnerContent *string
	Children     ElementList

	// parent is a navigation edge only. Children are owned by their parent's
	// Children list, never the other way around.
	parent *Element
	root   bool
}

// NewElement returns a detached element for the raw tag token name.
func NewElement(name, tagName string) *Element {
	return &Element{
		Name:    name,
		TagName: tagName,
	}
}

// NewRoot returns the synthetic element every built tree hangs from.
func NewRoot() *Element {
	return &Element{root: true}
}

// IsRoot reports whether e is a synthetic tree root.
func (e *Element) IsRoot() bool {
	return e.root
}

// Parent returns the element e was appended to, or nil for a root or a
// detached element.
func (e *Element) Parent() *Element {
	return e.parent
}

// AppendChild attaches child as the last child of e. A child that already has
// a parent is left untouched and nil is returned; elements are never
// re-parented.
func (e *Element) AppendChild(child *Element) *Element {
	if child == nil || child.parent != nil || child.root {
		return nil
	}
	for p := e; p != nil; p = p.parent {
		if p == child {
			return nil
		}
	}
	child.parent = e
	e.Children = append(e.Children, child)
	return child
}

// Descendants returns every element below e in breadth-first order. e itself
// is not included.
func (e *Element) Descendants() ElementList {
	var (
		out   ElementList
		queue = append(ElementList{}, e.Children...)
	)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		out = append(out, next)
		queue = append(queue, next.Children...)
	}
	return out
}

// Ancestors walks the parent chain starting at e's parent. The synthetic
// root, when present, is the last entry.
func (e *Element) Ancestors() ElementList {
	var out ElementList
	for p := e.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

// Depth is the number of edges between e and the top of its tree.
func (e *Element) Depth() int {
	return len(e.Ancestors())
}

// IDValue returns the element id, or the empty string when none is set.
func (e *Element) IDValue() string {
	if e.ID == nil {
		return ""
	}
	return *e.ID
}

func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// HasClasses reports whether every class in want is present on e. Order and
// repetition in want are irrelevant.
func (e *Element) HasClasses(want ...string) bool {
	for _, c := range want {
		if !e.HasClass(c) {
			return false
		}
	}
	return true
}

// AddClass appends class unless it is empty or already present.
func (e *Element) AddClass(class string) {
	if class == "" || e.HasClass(class) {
		return
	}
	e.Classes = append(e.Classes, class)
}

func (e *Element) SetID(id string) {
	e.ID = &id
}

func serializeElement(e *Element) string {
	if e.root {
		return "#root"
	}
	s := e.Name
	if e.ID != nil {
		s += " #" + *e.ID
	}
	if len(e.Classes) > 0 {
		s += " ." + strings.Join(e.Classes, ".")
	}
	return s
}

func (e *Element) serialize(ident int, b *strings.Builder) {
	if !e.root {
		b.WriteString("| ")
		for i := 1; i < ident; i++ {
			b.WriteString("  ")
		}
	}
	b.WriteString(serializeElement(e))
	b.WriteString("\n")
	for _, child := range e.Children {
		child.serialize(ident+1, b)
	}
}

// String renders the subtree rooted at e one element per line, indented by
// depth, in document order.
func (e *Element) String() string {
	var b strings.Builder
	ident := 0
	if !e.root {
		ident = 1
	}
	e.serialize(ident, &b)
	return strings.TrimRight(b.String(), "\n")
}
