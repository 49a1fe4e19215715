package inline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Sentinel errors for tokenizing.
var (
	ErrMalformedInline = errors.New("invalid markdown, unclosed formatted section")
	ErrInvalidInput    = errors.New("input is not text")
	ErrResourceLimit   = errors.New("too many inline elements")
)

// MaxMatches caps image or link extractions from a single span.
var MaxMatches = 10000

// Delimiters for the paired-marker passes.
const (
	BoldDelimiter   = "**"
	CodeDelimiter   = "`"
	ItalicDelimiter = "_"
)

// Precompiled patterns. The link pattern also captures an optional leading
// "!" so that image syntax can be recognized and skipped.
var (
	imagePattern = regexp.MustCompile(`!\[([^\[\]]*)\]\(([^\(\)]*)\)`)
	linkPattern  = regexp.MustCompile(`(!?)\[([^\[\]]*)\]\(([^\(\)]*)\)`)
)

// Match is one extracted image or link.
type Match struct {
	Label string
	URL   string
}

// match locates a construct inside a string.
type match struct {
	start, end int
	Match
}

// TextToSpans tokenizes text through all passes.
// A nil or empty input yields no spans. Input that is not a string or byte
// slice, or is not valid UTF-8, fails with ErrInvalidInput.
func TextToSpans(text any) ([]TextSpan, error) {
	var s string
	switch v := text.(type) {
	case nil:
		return nil, nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidInput, text)
	}
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrInvalidInput)
	}
	return Tokenize(s)
}

// Tokenize splits text into spans: bold, code, italic, image, then link.
func Tokenize(text string) ([]TextSpan, error) {
	if text == "" {
		return nil, nil
	}

	spans := []TextSpan{NewSpan(text, Plain)}

	var err error
	for _, pass := range []struct {
		delim string
		kind  Kind
	}{
		{BoldDelimiter, Bold},
		{CodeDelimiter, Code},
		{ItalicDelimiter, Italic},
	} {
		spans, err = SplitDelimiter(spans, pass.delim, pass.kind)
		if err != nil {
			return nil, err
		}
	}

	if spans, err = SplitImages(spans); err != nil {
		return nil, err
	}
	return SplitLinks(spans)
}

// SplitDelimiter splits every Plain span on delim. Text between a pair of
// delimiters becomes a span of kind; empty segments are dropped.
// An odd number of delimiters in a span fails with ErrMalformedInline.
func SplitDelimiter(spans []TextSpan, delim string, kind Kind) ([]TextSpan, error) {
	if delim == "" {
		return nil, fmt.Errorf("%w: empty delimiter", ErrInvalidInput)
	}
	if kind.HasURL() {
		return nil, fmt.Errorf("%w: %s spans cannot be delimited", ErrInvalidInput, kind)
	}

	out := make([]TextSpan, 0, len(spans))
	for _, span := range spans {
		if span.Kind != Plain {
			out = append(out, span)
			continue
		}

		sections := strings.Split(span.Text, delim)
		if len(sections)%2 == 0 {
			return nil, fmt.Errorf("%w: unmatched %q in %q", ErrMalformedInline, delim, span.Text)
		}
		for i, section := range sections {
			if section == "" {
				continue
			}
			if i%2 == 0 {
				out = append(out, NewSpan(section, Plain))
			} else {
				out = append(out, NewSpan(section, kind))
			}
		}
	}
	return out, nil
}

// ExtractImages returns every ![alt](url) in text, left to right.
func ExtractImages(text string) []Match {
	var out []Match
	for _, m := range findAll(text, findImage) {
		out = append(out, m.Match)
	}
	return out
}

// ExtractLinks returns every [text](url) in text that is not an image.
func ExtractLinks(text string) []Match {
	var out []Match
	for _, m := range findAll(text, findLink) {
		out = append(out, m.Match)
	}
	return out
}

// SplitImages replaces image syntax inside Plain spans with Image spans.
func SplitImages(spans []TextSpan) ([]TextSpan, error) {
	return splitConstructs(spans, Image, findImage)
}

// SplitLinks replaces link syntax inside Plain spans with Link spans.
// Image syntax is left in place.
func SplitLinks(spans []TextSpan) ([]TextSpan, error) {
	return splitConstructs(spans, Link, findLink)
}

// splitConstructs walks each Plain span with a cursor, cutting out the first
// construct in the remaining text until none is left.
func splitConstructs(spans []TextSpan, kind Kind, find func(string) (match, bool)) ([]TextSpan, error) {
	out := make([]TextSpan, 0, len(spans))
	for _, span := range spans {
		if span.Kind != Plain {
			out = append(out, span)
			continue
		}

		rest := span.Text
		matches := 0
		for rest != "" {
			m, ok := find(rest)
			if !ok {
				out = append(out, NewSpan(rest, Plain))
				break
			}
			if matches++; matches > MaxMatches {
				return nil, fmt.Errorf("%w: more than %d %s elements", ErrResourceLimit, MaxMatches, kind)
			}
			if m.start > 0 {
				out = append(out, NewSpan(rest[:m.start], Plain))
			}
			out = append(out, NewURLSpan(m.Label, kind, m.URL))
			rest = rest[m.end:]
		}
	}
	return out, nil
}

func findAll(text string, find func(string) (match, bool)) []match {
	var out []match
	offset := 0
	for {
		m, ok := find(text[offset:])
		if !ok {
			return out
		}
		m.start += offset
		m.end += offset
		out = append(out, m)
		offset = m.end
	}
}

func findImage(text string) (match, bool) {
	loc := imagePattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return match{}, false
	}
	return match{
		start: loc[0],
		end:   loc[1],
		Match: Match{Label: text[loc[2]:loc[3]], URL: text[loc[4]:loc[5]]},
	}, true
}

func findLink(text string) (match, bool) {
	for _, loc := range linkPattern.FindAllStringSubmatchIndex(text, -1) {
		if loc[3] > loc[2] {
			// preceded by "!": image syntax
			continue
		}
		return match{
			start: loc[0],
			end:   loc[1],
			Match: Match{Label: text[loc[4]:loc[5]], URL: text[loc[6]:loc[7]]},
		}, true
	}
	return match{}, false
}
