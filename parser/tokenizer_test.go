package parser

import (
	"regexp"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenizerTestcase struct {
	inHTML string   // markup to tokenize
	tokens []string // every token expected, in order
}

var tokenizerTests = []tokenizerTestcase{
	{`<div><p class="a"><span></span></p></div>`, []string{"<div>", `<p class="a">`, "<span>", "</span>", "</p>", "</div>"}},
	{"", []string{}},
	{"no markup here", []string{}},
	{"a < b and c > d", []string{"< b and c >"}},
	{"<>", []string{}},
	{"<><a>", []string{"<a>"}},
	{"<a<b>", []string{"<a<b>"}},
	{"<<a>", []string{"<<a>"}},
	{"text <unterminated", []string{}},
	{"<a>tail <b", []string{"<a>"}},
	{"<br/><img src=x />", []string{"<br/>", "<img src=x />"}},
	{"<!DOCTYPE html>\n<html>", []string{"<!DOCTYPE html>", "<html>"}},
	{"<p title='1 &lt; 2'>&amp;</p>", []string{"<p title='1 &lt; 2'>", "</p>"}},
	{"<a\nhref=x\n>multi\nline</a>", []string{"<a\nhref=x\n>", "</a>"}},
	{"<a>>>", []string{"<a>"}},
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

func TestTokenize(t *testing.T) {
	for _, tt := range tokenizerTests {
		tt := tt
		t.Run(tt.inHTML, func(t *testing.T) {
			t.Parallel()
			got := Tokenize(tt.inHTML)
			if diff := cmp.Diff(tt.tokens, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestTokenizeAgreesWithPattern checks the scanner against the plain regular
// expression over inputs with awkward bracket placement.
func TestTokenizeAgreesWithPattern(t *testing.T) {
	inputs := []string{
		"<<<>>>", "><><><", "<a><<b>>", "x<y<z>w>v", "< >", "<\t>", "<a>b<c>d<", ">>><a",
		`<div class="x">` + strings.Repeat("<span>text</span>", 50) + "</div>",
	}
	for _, tt := range tokenizerTests {
		inputs = append(inputs, tt.inHTML)
	}

	for _, in := range inputs {
		want := tagPattern.FindAllString(in, -1)
		if want == nil {
			want = []string{}
		}
		assert.Equal(t, want, Tokenize(in), "input %q", in)
	}
}

func TestHTMLTokenizerStreaming(t *testing.T) {
	in := `<html><body>` + strings.Repeat(`<p class="row">cell</p>`, 1000) + `</body></html>`
	p := NewHTMLTokenizer(iotest.OneByteReader(strings.NewReader(in)))

	var count int
	for p.Next() {
		count++
	}
	require.NoError(t, p.Err())
	assert.Equal(t, 2+2*1000+2, count)
	assert.False(t, p.Next())
	assert.Empty(t, p.Token())
}

func TestHTMLTokenizerReadError(t *testing.T) {
	p := NewHTMLTokenizer(iotest.TimeoutReader(strings.NewReader("<a><b>")))
	var tokens []string
	for p.Next() {
		tokens = append(tokens, p.Token())
	}
	require.Error(t, p.Err())
	assert.ErrorIs(t, p.Err(), iotest.ErrTimeout)

	_, err := NewParser(iotest.ErrReader(iotest.ErrTimeout), defaultTable).Start()
	assert.ErrorIs(t, err, iotest.ErrTimeout)
}

func TestTokenHelpers(t *testing.T) {
	tests := []struct {
		token       string
		tagName     string
		end         bool
		selfClosing bool
	}{
		{"<div>", "div", false, false},
		{"</DIV>", "div", true, false},
		{`<P class="a">`, "p", false, false},
		{"<br/>", "br", false, true},
		{"<img src=x />", "img", false, true},
		{"<x-icon\tname=a>", "x-icon", false, false},
		{"<!DOCTYPE html>", "!doctype", false, false},
		{"<!-- hi -->", "!--", false, false},
		{"<!--x-->", "!--", false, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.tagName, TagNameOf(tt.token), tt.token)
		assert.Equal(t, tt.end, IsEndTag(tt.token), tt.token)
		assert.Equal(t, tt.selfClosing, HasSelfClosingSyntax(tt.token), tt.token)
	}
}
