package parser

import (
	"strings"

	"github.com/heathj/tagtree/parser/spec"
)

type attribute struct {
	raw   string // as written, e.g. `class="a b"`
	name  string // lower-cased
	value string // quotes removed
}

// splitAttributes walks the text after a tag name and cuts it into
// name[=value] pairs. Quoted values may contain whitespace; an unterminated
// quote runs to the end of the text.
func splitAttributes(src string) []attribute {
	var (
		attrs []attribute
		i     int
	)
	skipSpace := func() {
		for i < len(src) && isASCIIWhitespace(rune(src[i])) {
			i++
		}
	}

	for {
		skipSpace()
		if i >= len(src) {
			return attrs
		}
		start := i
		for i < len(src) && src[i] != '=' && !isASCIIWhitespace(rune(src[i])) {
			i++
		}
		// a stray `=` with no name in front of it becomes part of the name
		if i == start {
			i++
			for i < len(src) && src[i] != '=' && !isASCIIWhitespace(rune(src[i])) {
				i++
			}
		}
		attr := attribute{name: strings.ToLower(src[start:i])}

		save := i
		skipSpace()
		if i >= len(src) || src[i] != '=' {
			i = save
			attr.raw = src[start:i]
			attrs = append(attrs, attr)
			continue
		}
		i++
		skipSpace()

		if i < len(src) && (src[i] == '"' || src[i] == '\'') {
			quote := src[i]
			i++
			valueStart := i
			for i < len(src) && src[i] != quote {
				i++
			}
			attr.value = src[valueStart:i]
			if i < len(src) {
				i++
			}
		} else {
			valueStart := i
			for i < len(src) && !isASCIIWhitespace(rune(src[i])) {
				i++
			}
			attr.value = src[valueStart:i]
		}
		attr.raw = src[start:i]
		attrs = append(attrs, attr)
	}
}

// applyAttributes fills the element's Attributes, Classes and ID from its raw
// token. Only class and id are interpreted; every other attribute is kept as
// its raw text. The first id attribute wins.
func applyAttributes(e *spec.Element) {
	e.Attributes = nil
	e.Classes = nil
	e.ID = nil
	// end tags, comments and doctypes carry no attributes worth reading
	if IsEndTag(e.Name) || strings.HasPrefix(e.TagName, "!") {
		return
	}
	for _, attr := range splitAttributes(attributeSource(e.Name)) {
		e.Attributes = append(e.Attributes, attr.raw)
		switch attr.name {
		case "class":
			for _, c := range strings.Fields(attr.value) {
				e.AddClass(c)
			}
		case "id":
			if e.ID == nil {
				e.SetID(attr.value)
			}
		}
	}
}

// PopulateAttributes extracts attributes, classes and ids for every element
// under root from the raw tag tokens. Elements already carrying values are
// overwritten.
func PopulateAttributes(root *spec.Element) {
	if !root.IsRoot() {
		applyAttributes(root)
	}
	for _, e := range root.Descendants() {
		applyAttributes(e)
	}
}
