package parser

import (
	"io"

	"github.com/heathj/tagtree/parser/spec"
	"github.com/heathj/tagtree/parser/tags"
)

// Parser streams markup from a reader straight into a tree.
type Parser struct {
	Tokenizer       *HTMLTokenizer
	TreeConstructor *HTMLTreeConstructor
}

func NewParser(htmlIn io.Reader, table *tags.Table, opts ...Option) *Parser {
	return &Parser{
		Tokenizer:       NewHTMLTokenizer(htmlIn),
		TreeConstructor: NewHTMLTreeConstructor(table, opts...),
	}
}

// Start consumes the whole input and returns the root of the built tree.
func (p *Parser) Start() (*spec.Element, error) {
	for p.Tokenizer.Next() {
		if err := p.TreeConstructor.ProcessToken(p.Tokenizer.Token()); err != nil {
			return nil, err
		}
	}
	if err := p.Tokenizer.Err(); err != nil {
		return nil, err
	}
	return p.TreeConstructor.Root(), nil
}

// ParseString tokenizes markup and builds its tree in one call.
func ParseString(markup string, table *tags.Table, opts ...Option) (*spec.Element, error) {
	return BuildTree(Tokenize(markup), table, opts...)
}
