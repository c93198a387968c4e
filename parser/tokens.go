package parser

import (
	"strings"
)

// A tag token is the raw text of one `<...>` construct, brackets included.
// Tokens are not validated; these helpers only look at their outer shape.

// IsEndTag reports whether the token closes a scope (`</...>`).
func IsEndTag(token string) bool {
	return strings.HasPrefix(token, "</")
}

// HasSelfClosingSyntax reports whether the token is written in self-closing
// form (`<br/>`, `<img src=x />`).
func HasSelfClosingSyntax(token string) bool {
	return strings.HasSuffix(token, "/>")
}

// TagNameOf extracts the bare, lower-cased tag name from a raw token:
// `<P class="a">` is "p", `</div>` is "div", `<br/>` is "br" and
// `<!DOCTYPE html>` is "!doctype". Comments report "!--".
func TagNameOf(token string) string {
	s := strings.TrimPrefix(token, "<")
	s = strings.TrimSuffix(s, ">")
	s = strings.TrimPrefix(s, "/")
	if strings.HasPrefix(s, "!--") {
		return "!--"
	}
	end := strings.IndexFunc(s, func(r rune) bool {
		return isASCIIWhitespace(r) || r == '/' || r == '>'
	})
	if end >= 0 {
		s = s[:end]
	}
	return strings.ToLower(s)
}

// attributeSource returns whatever follows the tag name inside the token,
// with the closing bracket and any self-closing slash removed.
func attributeSource(token string) string {
	s := strings.TrimPrefix(token, "<")
	s = strings.TrimSuffix(s, ">")
	s = strings.TrimSuffix(s, "/")
	end := strings.IndexFunc(s, isASCIIWhitespace)
	if end < 0 {
		return ""
	}
	return s[end:]
}

func isASCIIWhitespace(r rune) bool {
	switch r {
	case 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	default:
		return false
	}
}
