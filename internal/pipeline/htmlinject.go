package pipeline

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Placeholders substituted in page templates.
const (
	TitlePlaceholder   = "{{ Title }}"
	ContentPlaceholder = "{{ Content }}"
)

// ErrMissingPlaceholder indicates a page template lacks a required placeholder.
var ErrMissingPlaceholder = errors.New("template missing placeholder")

// PageData holds the values substituted into a page template.
type PageData struct {
	Title   string // plain text, escaped on substitution
	Content string // rendered HTML, inserted verbatim
}

// TemplateInjector produces a page from a template.
type TemplateInjector interface {
	InjectPage(ctx context.Context, data PageData) (string, error)
}

// PageTemplate substitutes title and content into a template string.
type PageTemplate struct {
	tmpl string
}

// NewPageTemplate returns ErrMissingPlaceholder if either placeholder is
// absent from tmpl.
func NewPageTemplate(tmpl string) (*PageTemplate, error) {
	for _, p := range []string{TitlePlaceholder, ContentPlaceholder} {
		if !strings.Contains(tmpl, p) {
			return nil, fmt.Errorf("%w: %s", ErrMissingPlaceholder, p)
		}
	}
	return &PageTemplate{tmpl: tmpl}, nil
}

// InjectPage replaces every occurrence of both placeholders in one pass:
// placeholder text inside the title or the content is never substituted.
func (t *PageTemplate) InjectPage(ctx context.Context, data PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r := strings.NewReplacer(
		TitlePlaceholder, html.EscapeString(data.Title),
		ContentPlaceholder, data.Content,
	)
	return r.Replace(t.tmpl), nil
}

// CSSInjector makes a page self-contained by inlining a stylesheet.
type CSSInjector interface {
	InjectCSS(ctx context.Context, page, css string) (string, error)
}

// CSSInjection inlines CSS as a <style> element at the end of <head>.
type CSSInjection struct{}

// InjectCSS replaces the page's local stylesheet links, which point into
// the site and break once the page is viewed on its own, with a <style>
// element holding css. Links to absolute URLs are kept. A fragment gets
// the <style> element prepended. Empty css leaves the page unchanged.
func (s *CSSInjection) InjectCSS(ctx context.Context, page, css string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if css == "" {
		return page, nil
	}

	doc, isFragment, err := parseHTML(page)
	if err != nil {
		return "", fmt.Errorf("inlining stylesheet: %w", err)
	}

	style := &nethtml.Node{Type: nethtml.ElementNode, DataAtom: atom.Style, Data: "style"}
	style.AppendChild(&nethtml.Node{Type: nethtml.TextNode, Data: sanitizeCSS(css)})

	if isFragment {
		doc.InsertBefore(style, doc.FirstChild)
		return renderHTML(doc, true)
	}

	head := findElement(doc, atom.Head)
	if head == nil {
		// html.Parse always creates a head; keep a fallback for safety.
		doc.InsertBefore(style, doc.FirstChild)
		return renderHTML(doc, false)
	}
	dropLocalStylesheets(head)
	head.AppendChild(style)
	return renderHTML(doc, false)
}

// findElement returns the first element of type a in document order.
func findElement(n *nethtml.Node, a atom.Atom) *nethtml.Node {
	if n.Type == nethtml.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// dropLocalStylesheets removes <link rel="stylesheet"> children of head
// whose href stays inside the site.
func dropLocalStylesheets(head *nethtml.Node) {
	for c := head.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == nethtml.ElementNode && c.DataAtom == atom.Link &&
			strings.EqualFold(attr(c, "rel"), "stylesheet") && isRelativeLink(attr(c, "href")) {
			head.RemoveChild(c)
		}
		c = next
	}
}

func attr(n *nethtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// sanitizeCSS escapes sequences that could close the <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

var (
	_ TemplateInjector = (*PageTemplate)(nil)
	_ CSSInjector      = (*CSSInjection)(nil)
)
