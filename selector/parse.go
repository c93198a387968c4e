package selector

import (
	"fmt"
	"strings"
)

// ParseError reports a query string that is not a chain of compound
// selectors.
type ParseError struct {
	Query   string
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("selector %q, offset %d: %s", e.Query, e.Offset, e.Message)
}

// unsupported lists characters from CSS syntax this grammar does not accept.
const unsupported = `>+~[]():,"'\`

// Parse reads a whitespace separated list of compound selectors, each of the
// form tag#id.class1.class2 with every part optional, and chains them as
// descendant stages. "*" stands for any tag.
func Parse(query string) (*Selector, error) {
	var (
		stages []*Selector
		i      int
	)
	for {
		for i < len(query) && isSpace(query[i]) {
			i++
		}
		if i >= len(query) {
			break
		}
		start := i
		for i < len(query) && !isSpace(query[i]) {
			i++
		}
		stage, err := parseCompound(query, start, query[start:i])
		if err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}
	if len(stages) == 0 {
		return nil, &ParseError{Query: query, Message: "empty selector"}
	}
	return Chain(stages...), nil
}

// MustParse is Parse for queries known to be valid; it panics otherwise.
func MustParse(query string) *Selector {
	s, err := Parse(query)
	if err != nil {
		panic(err)
	}
	return s
}

func parseCompound(query string, offset int, src string) (*Selector, error) {
	fail := func(at int, msg string) error {
		return &ParseError{Query: query, Offset: offset + at, Message: msg}
	}
	if at := strings.IndexAny(src, unsupported); at >= 0 {
		return nil, fail(at, fmt.Sprintf("unsupported character %q", src[at]))
	}

	s := &Selector{}
	i := nextMarker(src, 0)
	s.TagName = src[:i]
	if s.TagName == "*" {
		s.TagName = ""
	}

	for i < len(src) {
		marker := src[i]
		end := nextMarker(src, i+1)
		name := src[i+1 : end]
		if name == "" {
			return nil, fail(i, fmt.Sprintf("missing name after %q", marker))
		}
		switch marker {
		case '#':
			if s.ID != nil {
				return nil, fail(i, "more than one id")
			}
			s.WithID(name)
		case '.':
			s.Classes = append(s.Classes, name)
		}
		i = end
	}
	return s, nil
}

func nextMarker(src string, from int) int {
	if i := strings.IndexAny(src[from:], "#."); i >= 0 {
		return from + i
	}
	return len(src)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	default:
		return false
	}
}
