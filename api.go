package md2html

import (
	"context"

	"github.com/alnah/go-md2html/internal/block"
	"github.com/alnah/go-md2html/internal/htmlnode"
	"github.com/alnah/go-md2html/internal/inline"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// TextToSpans splits inline Markdown into formatted spans: bold, then code,
// then italic, then images, then links.
// Empty text or nil yields no spans. Input that is neither a string nor a
// byte slice, or is not valid UTF-8, returns ErrInvalidInput; an unpaired
// delimiter returns ErrMalformedInline.
func TextToSpans(text any) ([]TextSpan, error) {
	return inline.TextToSpans(text)
}

// Classify returns the kind of a Markdown block. It never fails: anything
// unrecognized is a paragraph.
func Classify(markdownBlock string) BlockKind {
	return block.Classify(markdownBlock)
}

// RenderBlock renders one block of the given kind into a div node.
func RenderBlock(markdownBlock string, kind BlockKind) (Node, error) {
	return block.Render(markdownBlock, kind)
}

// ToDocumentFragment converts a whole document to its node tree with the
// native engine. An empty document yields a container rendering as <div></div>.
func ToDocumentFragment(markdown string) (Node, error) {
	return pipeline.NewNativeConverter(EmptyAllow).ToFragment(context.Background(), markdown)
}

// ExtractTitle returns the text of the first "# " heading line, trimmed.
// Returns ErrMissingTitle if there is none or it is blank.
func ExtractTitle(markdown string) (string, error) {
	return pipeline.ExtractTitle(markdown)
}

// NewLeaf creates a leaf node. An empty tag renders the value as raw text.
func NewLeaf(tag, value string, attrs ...Attr) *Leaf {
	return htmlnode.NewLeaf(tag, value, attrs...)
}

// NewParent creates a parent node. Rendering fails with ErrStructural when
// tag or children are empty.
func NewParent(tag string, children []Node, attrs ...Attr) *Parent {
	return htmlnode.NewParent(tag, children, attrs...)
}

// EqualNodes reports whether two trees have the same tags, values,
// attributes and children.
func EqualNodes(a, b Node) bool {
	return htmlnode.Equal(a, b)
}
