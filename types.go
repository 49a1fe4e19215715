package md2html

import (
	"time"

	"github.com/alnah/go-md2html/internal/block"
	"github.com/alnah/go-md2html/internal/htmlnode"
	"github.com/alnah/go-md2html/internal/inline"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Node is an element of the HTML node tree: a *Leaf or a *Parent.
type Node = htmlnode.Node

// Leaf is a node holding a text value.
type Leaf = htmlnode.Leaf

// Parent is a node holding child nodes.
type Parent = htmlnode.Parent

// Attr is one HTML attribute. Attributes render in insertion order.
type Attr = htmlnode.Attr

// TextSpan is a contiguous run of inline text with one formatting kind.
type TextSpan = inline.TextSpan

// SpanKind classifies a TextSpan.
type SpanKind = inline.Kind

// Span kinds.
const (
	SpanPlain  = inline.Plain
	SpanBold   = inline.Bold
	SpanItalic = inline.Italic
	SpanCode   = inline.Code
	SpanLink   = inline.Link
	SpanImage  = inline.Image
)

// BlockKind is the classification of one Markdown block.
type BlockKind = block.Kind

// BlockType is the structural type of a block.
type BlockType = block.Type

// Block types.
const (
	BlockParagraph     = block.Paragraph
	BlockHeading       = block.Heading
	BlockCode          = block.CodeBlock
	BlockQuote         = block.Quote
	BlockUnorderedList = block.UnorderedList
	BlockOrderedList   = block.OrderedList
)

// EmptyDocumentPolicy decides what an empty or whitespace-only document yields.
type EmptyDocumentPolicy = pipeline.EmptyDocumentPolicy

// Empty document policies.
const (
	EmptyAllow  = pipeline.EmptyAllow
	EmptyReject = pipeline.EmptyReject
)

// Engine names.
const (
	EngineNative   = pipeline.EngineNative
	EngineGoldmark = pipeline.EngineGoldmark
)

// Input contains the data for a single conversion.
type Input struct {
	Markdown string // Required

	// FullPage substitutes title and fragment into the page template.
	// The document must then contain a "# " title line.
	FullPage bool

	// InlineStyle embeds the stylesheet into the page head, for pages
	// viewed outside the site (stdout output, PDF export). Implies FullPage.
	InlineStyle bool
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	Title    string // First "# " heading, empty if none and FullPage unset
	Fragment string // Rendered document fragment
	Page     string // Complete page, set when FullPage or InlineStyle
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	engine       string
	emptyPolicy  EmptyDocumentPolicy
	templateName string
	styleName    string
	assetPath    string
	rewriteLinks bool
	timeout      time.Duration
}

// defaultTimeout bounds PDF rendering of one page when no timeout is given.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithEngine selects the Markdown engine: EngineNative (default) or
// EngineGoldmark. NewConverter returns ErrUnknownEngine for other names.
func WithEngine(name string) Option {
	return func(c *Converter) {
		c.cfg.engine = name
	}
}

// WithEmptyDocument sets the empty document policy of the native engine.
func WithEmptyDocument(policy EmptyDocumentPolicy) Option {
	return func(c *Converter) {
		c.cfg.emptyPolicy = policy
	}
}

// WithTemplate selects the page template by name (without .html).
func WithTemplate(name string) Option {
	return func(c *Converter) {
		c.cfg.templateName = name
	}
}

// WithStyle selects the stylesheet inlined by Input.InlineStyle, by name
// (without .css).
func WithStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.styleName = name
	}
}

// WithAssetPath sets a directory of template and stylesheet overrides.
// Missing assets fall back to the embedded defaults.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader, taking precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.assetLoader = loader
	}
}

// WithRewriteLinks points relative links to .md files at the generated
// .html pages.
func WithRewriteLinks(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.rewriteLinks = enabled
	}
}
