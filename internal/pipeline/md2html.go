package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Sentinel errors for engine selection and conversion.
var (
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrUnknownEngine  = errors.New("unknown engine")
)

// Engine names accepted by NewConverter.
const (
	EngineNative   = "native"
	EngineGoldmark = "goldmark"
)

// defaultHighlightStyle is the chroma style used for fenced code.
const defaultHighlightStyle = "github"

// Compile-time interface implementation checks.
var (
	_ HTMLConverter        = (*NativeConverter)(nil)
	_ HTMLConverter        = (*GoldmarkConverter)(nil)
	_ MarkdownPreprocessor = (*NormalizingPreprocessor)(nil)
)

// NewConverter returns the HTMLConverter for an engine name.
// An empty name selects the native engine.
func NewConverter(engine string, policy EmptyDocumentPolicy) (HTMLConverter, error) {
	switch engine {
	case "", EngineNative:
		return NewNativeConverter(policy), nil
	case EngineGoldmark:
		return NewGoldmarkConverter(), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownEngine, engine, EngineNative, EngineGoldmark)
	}
}

// GoldmarkConverter converts Markdown with goldmark for documents that need
// syntax the native engine does not cover (tables, nested emphasis,
// footnotes). Output is wrapped in the same outer div as native output.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and syntax highlighting.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithStyle(defaultHighlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes, styles come from the site stylesheet
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Raw HTML stays escaped: WithUnsafe is not set.
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		buf.WriteString("<" + documentTag + ">")
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		buf.WriteString("</" + documentTag + ">")
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
