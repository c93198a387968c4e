package selector

import (
	"strings"

	"github.com/heathj/tagtree/parser/spec"
)

// NameMode chooses which element field a stage's TagName is compared with.
type NameMode uint

const (
	// MatchTagName compares against the bare tag name, ignoring case.
	MatchTagName NameMode = iota
	// MatchRawToken compares against the raw tag token, byte for byte, so a
	// stage must spell out the token (`<p class="a">`) to match it. A stage
	// with an empty TagName still matches any token.
	MatchRawToken
)

// Policy decides how results from different branches of a chain combine.
type Policy uint

const (
	// OrderedList keeps traversal order and repeats an element once for every
	// chain path that reaches it.
	OrderedList Policy = iota
	// DeduplicatedSet keeps each element once. Callers must not rely on the
	// order of the result.
	DeduplicatedSet
)

// Matcher resolves selectors against element trees. The zero value compares
// bare tag names. A Matcher never modifies the tree, so several may run over
// the same finished tree at once.
type Matcher struct {
	Names NameMode
}

type accumulator interface {
	add(e *spec.Element)
	result() spec.ElementList
}

type listAccumulator struct {
	out spec.ElementList
}

func (a *listAccumulator) add(e *spec.Element) { a.out = append(a.out, e) }

func (a *listAccumulator) result() spec.ElementList { return a.out }

type setAccumulator struct {
	seen map[*spec.Element]struct{}
	out  spec.ElementList
}

func (a *setAccumulator) add(e *spec.Element) {
	if _, ok := a.seen[e]; ok {
		return
	}
	a.seen[e] = struct{}{}
	a.out = append(a.out, e)
}

func (a *setAccumulator) result() spec.ElementList { return a.out }

func newAccumulator(p Policy) accumulator {
	if p == DeduplicatedSet {
		return &setAccumulator{seen: make(map[*spec.Element]struct{})}
	}
	return &listAccumulator{}
}

// Match returns the elements reached by the whole chain starting at sel,
// searching below root. root itself is never part of the result. A nil
// selector matches nothing.
func (m Matcher) Match(root *spec.Element, sel *Selector, policy Policy) spec.ElementList {
	acc := newAccumulator(policy)
	if root != nil && sel != nil {
		m.find(root, sel, acc)
	}
	if out := acc.result(); out != nil {
		return out
	}
	return spec.ElementList{}
}

func (m Matcher) find(root *spec.Element, stage *Selector, acc accumulator) {
	for _, e := range root.Descendants() {
		if !m.Matches(e, stage) {
			continue
		}
		if stage.Child == nil {
			acc.add(e)
			continue
		}
		m.find(e, stage.Child, acc)
	}
}

// Matches reports whether e satisfies the single stage, ignoring the rest of
// the chain.
func (m Matcher) Matches(e *spec.Element, stage *Selector) bool {
	if e.IsRoot() {
		return false
	}
	if stage.TagName != "" {
		switch m.Names {
		case MatchRawToken:
			if e.Name != stage.TagName {
				return false
			}
		default:
			if !strings.EqualFold(e.TagName, stage.TagName) {
				return false
			}
		}
	}
	if stage.ID != nil && e.IDValue() != *stage.ID {
		return false
	}
	return e.HasClasses(stage.Classes...)
}

// FindAll resolves sel below root keeping every path's results in order.
func FindAll(root *spec.Element, sel *Selector) spec.ElementList {
	return Matcher{}.Match(root, sel, OrderedList)
}

// FindSet resolves sel below root keeping each element once.
func FindSet(root *spec.Element, sel *Selector) spec.ElementList {
	return Matcher{}.Match(root, sel, DeduplicatedSet)
}

// First returns the first element FindAll would return, or nil.
func First(root *spec.Element, sel *Selector) *spec.Element {
	if all := FindAll(root, sel); len(all) > 0 {
		return all[0]
	}
	return nil
}
