package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// HTMLTokenizer splits markup into tag tokens. A token is a `<`, one or more
// characters other than `>`, and the closing `>`. Everything between tokens is
// dropped, and a `<` with no `>` after it produces nothing.
type HTMLTokenizer struct {
	inputStream *bufio.Reader
	token       strings.Builder
	done        bool
	err         error
}

// NewHTMLTokenizer creates a tokenizer reading markup from r.
func NewHTMLTokenizer(r io.Reader) *HTMLTokenizer {
	return &HTMLTokenizer{
		inputStream: bufio.NewReader(r),
	}
}

// Next advances to the next tag token. It returns false once the input is
// exhausted or the reader fails; check Err to tell the two apart.
func (p *HTMLTokenizer) Next() bool {
	if p.done {
		return false
	}
	for {
		if _, err := p.inputStream.ReadString('<'); err != nil {
			p.finish(err)
			return false
		}
		body, err := p.inputStream.ReadString('>')
		if err != nil {
			p.finish(err)
			return false
		}
		// `<>` has nothing between the brackets and is not a tag.
		if len(body) == 1 {
			continue
		}
		p.token.Reset()
		p.token.WriteByte('<')
		p.token.WriteString(body)
		return true
	}
}

// Token returns the token found by the last successful call to Next.
func (p *HTMLTokenizer) Token() string {
	return p.token.String()
}

// Err returns the first read error other than io.EOF.
func (p *HTMLTokenizer) Err() error {
	return p.err
}

func (p *HTMLTokenizer) finish(err error) {
	p.done = true
	p.token.Reset()
	if err != io.EOF {
		p.err = errors.Wrap(err, "reading markup")
	}
}

// Tokenize returns every tag token in markup in document order. It never
// fails; markup without tags yields an empty slice.
func Tokenize(markup string) []string {
	tokens := []string{}
	p := NewHTMLTokenizer(strings.NewReader(markup))
	for p.Next() {
		tokens = append(tokens, p.Token())
	}
	return tokens
}
