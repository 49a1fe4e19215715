// Package block classifies and renders blank-line-delimited Markdown blocks.
package block

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Type is the structural type of a block.
type Type int

// Block types, in classification priority order.
const (
	Paragraph Type = iota
	Heading
	CodeBlock
	Quote
	UnorderedList
	OrderedList
)

var typeNames = [...]string{
	Paragraph:     "paragraph",
	Heading:       "heading",
	CodeBlock:     "code",
	Quote:         "quote",
	UnorderedList: "unordered_list",
	OrderedList:   "ordered_list",
}

// String returns the lowercase type name.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("type(%d)", int(t))
	}
	return typeNames[t]
}

// Kind is the classification of one block. Level is 1-6 for headings, 0 otherwise.
type Kind struct {
	Type  Type
	Level int
}

// String returns the type name, with the level for headings.
func (k Kind) String() string {
	if k.Type == Heading {
		return "heading(" + strconv.Itoa(k.Level) + ")"
	}
	return k.Type.String()
}

// Markers.
const (
	codeFence     = "```"
	quoteMarker   = ">"
	unorderedItem = "- "
)

var headingPattern = regexp.MustCompile(`^(#{1,6}) `)

// Classify determines the type of a block. The first matching rule wins:
// heading, fenced code, quote, unordered list, ordered list, paragraph.
func Classify(block string) Kind {
	if m := headingPattern.FindStringSubmatch(block); m != nil {
		return Kind{Type: Heading, Level: len(m[1])}
	}
	if isFenced(block) {
		return Kind{Type: CodeBlock}
	}

	lines := strings.Split(block, "\n")
	switch {
	case everyLineHasPrefix(lines, quoteMarker):
		return Kind{Type: Quote}
	case everyLineHasPrefix(lines, unorderedItem):
		return Kind{Type: UnorderedList}
	case isOrderedList(lines):
		return Kind{Type: OrderedList}
	}
	return Kind{Type: Paragraph}
}

// isFenced reports whether the block opens and closes with a code fence.
func isFenced(block string) bool {
	return len(block) >= 2*len(codeFence) &&
		strings.HasPrefix(block, codeFence) &&
		strings.HasSuffix(block, codeFence)
}

func everyLineHasPrefix(lines []string, prefix string) bool {
	for _, line := range lines {
		if !strings.HasPrefix(line, prefix) {
			return false
		}
	}
	return true
}

// isOrderedList requires line i to start with "{i+1}. ".
func isOrderedList(lines []string) bool {
	for i, line := range lines {
		if !strings.HasPrefix(line, orderedPrefix(i+1)) {
			return false
		}
	}
	return true
}

func orderedPrefix(n int) string {
	return strconv.Itoa(n) + ". "
}
