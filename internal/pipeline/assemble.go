package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-md2html/internal/block"
	"github.com/alnah/go-md2html/internal/htmlnode"
)

// ErrEmptyDocument indicates a document without blocks under EmptyReject.
// It wraps htmlnode.ErrStructural.
var ErrEmptyDocument = fmt.Errorf("empty document: %w", htmlnode.ErrStructural)

// documentTag wraps all block fragments of a document.
const documentTag = "div"

// blankLines separates blocks.
var blankLines = regexp.MustCompile(`\n{2,}`)

// EmptyDocumentPolicy decides what an empty or whitespace-only document yields.
type EmptyDocumentPolicy int

const (
	// EmptyAllow returns a container without children, rendered as <div></div>.
	EmptyAllow EmptyDocumentPolicy = iota
	// EmptyReject fails with ErrEmptyDocument.
	EmptyReject
)

// ParseEmptyDocumentPolicy maps "allow" and "reject" to a policy.
// An empty string means EmptyAllow.
func ParseEmptyDocumentPolicy(s string) (EmptyDocumentPolicy, error) {
	switch strings.ToLower(s) {
	case "", "allow":
		return EmptyAllow, nil
	case "reject":
		return EmptyReject, nil
	default:
		return EmptyAllow, fmt.Errorf("invalid empty document policy %q (must be allow or reject)", s)
	}
}

// HTMLConverter abstracts Markdown to HTML fragment conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// SplitBlocks splits a document on blank lines, trims each block and drops
// blocks left empty.
func SplitBlocks(markdown string) []string {
	var blocks []string
	for _, b := range blankLines.Split(markdown, -1) {
		if b = strings.TrimSpace(b); b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// NativeConverter classifies and renders each block with the built-in
// block and inline rules.
type NativeConverter struct {
	emptyPolicy EmptyDocumentPolicy
}

// NewNativeConverter creates a NativeConverter.
func NewNativeConverter(policy EmptyDocumentPolicy) *NativeConverter {
	return &NativeConverter{emptyPolicy: policy}
}

// ToFragment builds the node tree of a whole document: one div holding one
// fragment per block. Fails on the first block that cannot be rendered.
func (c *NativeConverter) ToFragment(ctx context.Context, markdown string) (htmlnode.Node, error) {
	blocks := SplitBlocks(markdown)
	if len(blocks) == 0 && c.emptyPolicy == EmptyReject {
		return nil, ErrEmptyDocument
	}

	children := make([]htmlnode.Node, 0, len(blocks))
	for i, b := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		kind := block.Classify(b)
		n, err := block.Render(b, kind)
		if err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i+1, kind, err)
		}
		children = append(children, n)
	}

	return htmlnode.NewContainer(documentTag, children), nil
}

// ToHTML converts a document to a rendered fragment string.
func (c *NativeConverter) ToHTML(ctx context.Context, content string) (string, error) {
	root, err := c.ToFragment(ctx, content)
	if err != nil {
		return "", err
	}
	return root.Render()
}
