// Package inline tokenizes a run of Markdown text into typed spans.
//
// Tokenizing is a fixed sequence of passes over a span list. Each pass only
// looks at Plain spans; a span that an earlier pass gave a kind is never
// re-examined, so code contents are not read as emphasis:
//
//  1. bold   **text**
//  2. code   `text`
//  3. italic _text_
//  4. image  ![alt](url)
//  5. link   [text](url)
package inline

import "fmt"

// Kind classifies a span of inline text.
type Kind int

// Span kinds.
const (
	Plain Kind = iota
	Bold
	Italic
	Code
	Link
	Image
)

var kindNames = [...]string{
	Plain:  "plain",
	Bold:   "bold",
	Italic: "italic",
	Code:   "code",
	Link:   "link",
	Image:  "image",
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// HasURL reports whether spans of this kind carry a URL.
func (k Kind) HasURL() bool {
	return k == Link || k == Image
}

// TextSpan is a contiguous run of text with one formatting kind.
// URL is set only for Link and Image spans. Spans are plain values:
// two spans with the same fields are interchangeable and compare equal.
type TextSpan struct {
	Text string
	Kind Kind
	URL  string
}

// NewSpan creates a span of a kind that carries no URL.
// Panics if kind requires a URL (programmer error).
func NewSpan(text string, kind Kind) TextSpan {
	if kind.HasURL() {
		panic("inline: NewSpan called with " + kind.String() + " kind, use NewURLSpan")
	}
	return TextSpan{Text: text, Kind: kind}
}

// NewURLSpan creates a Link or Image span.
// Panics if kind does not carry a URL (programmer error).
func NewURLSpan(text string, kind Kind, url string) TextSpan {
	if !kind.HasURL() {
		panic("inline: NewURLSpan called with " + kind.String() + " kind, use NewSpan")
	}
	return TextSpan{Text: text, Kind: kind, URL: url}
}

// String returns a debug representation.
func (s TextSpan) String() string {
	if s.Kind.HasURL() {
		return fmt.Sprintf("%s(%q, %q)", s.Kind, s.Text, s.URL)
	}
	return fmt.Sprintf("%s(%q)", s.Kind, s.Text)
}
