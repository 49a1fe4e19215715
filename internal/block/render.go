package block

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-md2html/internal/htmlnode"
	"github.com/alnah/go-md2html/internal/inline"
)

// Sentinel errors for rendering.
var (
	ErrUnknownSpanKind  = errors.New("unknown span kind")
	ErrUnknownBlockKind = errors.New("unknown block kind")
)

// blockTag wraps every rendered block.
const blockTag = "div"

// quoteSeparator joins the lines of a quote.
const quoteSeparator = "\n\n"

var (
	headingMarker = regexp.MustCompile(`^#{1,6} `)
	orderedMarker = regexp.MustCompile(`^[0-9]+\. `)
)

// Render converts a block into a div fragment according to kind.
// Inline markup inside headings, quotes, list items and paragraphs is
// tokenized; code block content is kept verbatim.
func Render(block string, kind Kind) (htmlnode.Node, error) {
	var (
		children []htmlnode.Node
		err      error
	)

	switch kind.Type {
	case Paragraph:
		children, err = inlineNodes(block)
	case Heading:
		children, err = renderHeading(block, kind.Level)
	case CodeBlock:
		children = renderCode(block)
	case Quote:
		children, err = renderQuote(block)
	case UnorderedList:
		children, err = renderList(block, "ul", func(line string) string {
			return strings.TrimPrefix(line, unorderedItem)
		})
	case OrderedList:
		children, err = renderList(block, "ol", func(line string) string {
			return orderedMarker.ReplaceAllString(line, "")
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBlockKind, kind)
	}
	if err != nil {
		return nil, err
	}

	return htmlnode.NewParent(blockTag, children), nil
}

// SpanToNode maps one inline span to a leaf node.
func SpanToNode(span inline.TextSpan) (htmlnode.Node, error) {
	switch span.Kind {
	case inline.Plain:
		return htmlnode.NewLeaf("", span.Text), nil
	case inline.Bold:
		return htmlnode.NewLeaf("b", span.Text), nil
	case inline.Italic:
		return htmlnode.NewLeaf("i", span.Text), nil
	case inline.Code:
		return htmlnode.NewLeaf("code", span.Text), nil
	case inline.Link:
		return htmlnode.NewLeaf("a", span.Text, htmlnode.Attr{Key: "href", Value: span.URL}), nil
	case inline.Image:
		return htmlnode.NewLeaf("img", "",
			htmlnode.Attr{Key: "src", Value: span.URL},
			htmlnode.Attr{Key: "alt", Value: span.URL},
		), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSpanKind, span.Kind)
	}
}

// inlineNodes tokenizes text and maps each span to a node.
func inlineNodes(text string) ([]htmlnode.Node, error) {
	spans, err := inline.Tokenize(text)
	if err != nil {
		return nil, err
	}
	nodes := make([]htmlnode.Node, 0, len(spans))
	for _, span := range spans {
		n, err := SpanToNode(span)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func renderHeading(block string, level int) ([]htmlnode.Node, error) {
	if level < 1 || level > 6 {
		return nil, fmt.Errorf("%w: heading level %d", ErrUnknownBlockKind, level)
	}
	children, err := inlineNodes(headingMarker.ReplaceAllString(block, ""))
	if err != nil {
		return nil, err
	}
	return []htmlnode.Node{htmlnode.NewParent("h"+strconv.Itoa(level), children)}, nil
}

func renderCode(block string) []htmlnode.Node {
	content := strings.TrimSuffix(strings.TrimPrefix(block, codeFence), codeFence)
	return []htmlnode.Node{htmlnode.NewLeaf("code", content)}
}

// renderQuote strips one ">" per line and joins the non-empty lines with a
// blank line.
func renderQuote(block string) ([]htmlnode.Node, error) {
	var parts []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(line, quoteMarker))
		if line != "" {
			parts = append(parts, line)
		}
	}
	children, err := inlineNodes(strings.Join(parts, quoteSeparator))
	if err != nil {
		return nil, err
	}
	return []htmlnode.Node{htmlnode.NewParent("blockquote", children)}, nil
}

func renderList(block, tag string, stripMarker func(string) string) ([]htmlnode.Node, error) {
	lines := strings.Split(block, "\n")
	items := make([]htmlnode.Node, 0, len(lines))
	for _, line := range lines {
		children, err := inlineNodes(strings.TrimSpace(stripMarker(line)))
		if err != nil {
			return nil, err
		}
		items = append(items, htmlnode.NewParent("li", children))
	}
	return []htmlnode.Node{htmlnode.NewParent(tag, items)}, nil
}
