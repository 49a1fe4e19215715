package pipeline

// Notes:
// - Tests RewriteLinks through its public API only
// - Error branches in parseHTML/renderHTML are not covered: the html package
//   does not fail on the fragments the native engine produces

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRewriteLinks - Markdown link targets
// ---------------------------------------------------------------------------

func TestRewriteLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "relative md link",
			html:         `<div><p><a href="guide.md">guide</a></p></div>`,
			wantContains: []string{`href="guide.html"`},
			wantExcludes: []string{`guide.md`},
		},
		{
			name:         "nested path keeps directories",
			html:         `<a href="docs/setup/install.md">install</a>`,
			wantContains: []string{`href="docs/setup/install.html"`},
		},
		{
			name:         "parent directory",
			html:         `<a href="../index.md">home</a>`,
			wantContains: []string{`href="../index.html"`},
		},
		{
			name:         "fragment preserved",
			html:         `<a href="guide.md#install">install</a>`,
			wantContains: []string{`href="guide.html#install"`},
		},
		{
			name:         "query preserved",
			html:         `<a href="guide.md?v=2">guide</a>`,
			wantContains: []string{`href="guide.html?v=2"`},
		},
		{
			name:         "markdown extension",
			html:         `<a href="notes.markdown">notes</a>`,
			wantContains: []string{`href="notes.html"`},
		},
		{
			name:         "uppercase extension",
			html:         `<a href="README.MD">readme</a>`,
			wantContains: []string{`href="README.html"`},
		},
		{
			name:         "absolute URL unchanged",
			html:         `<a href="https://example.com/guide.md">remote</a>`,
			wantContains: []string{`href="https://example.com/guide.md"`},
		},
		{
			name:         "protocol-relative URL unchanged",
			html:         `<a href="//cdn.example.com/a.md">cdn</a>`,
			wantContains: []string{`href="//cdn.example.com/a.md"`},
		},
		{
			name:         "mailto unchanged",
			html:         `<a href="mailto:a@example.com">mail</a>`,
			wantContains: []string{`href="mailto:a@example.com"`},
		},
		{
			name:         "anchor unchanged",
			html:         `<a href="#section">jump</a>`,
			wantContains: []string{`href="#section"`},
		},
		{
			name:         "non markdown file unchanged",
			html:         `<a href="files/report.pdf">report</a>`,
			wantContains: []string{`href="files/report.pdf"`},
		},
		{
			name:         "image src untouched",
			html:         `<img src="diagram.md" alt="diagram.md">`,
			wantContains: []string{`src="diagram.md"`},
		},
		{
			name: "full document",
			html: `<!DOCTYPE html><html><head><title>T</title></head><body><a href="a.md">a</a></body></html>`,
			wantContains: []string{
				`<!DOCTYPE html>`,
				`href="a.html"`,
				`<title>T</title>`,
			},
		},
		{
			name:         "fragment not wrapped in html body",
			html:         `<div><a href="a.md">a</a></div>`,
			wantContains: []string{`<div><a href="a.html">a</a></div>`},
			wantExcludes: []string{`<html>`, `<body>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteLinks(tt.html)
			if err != nil {
				t.Fatalf("RewriteLinks() unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RewriteLinks() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("RewriteLinks() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRewriteHref - Single href decisions
// ---------------------------------------------------------------------------

func TestRewriteHref(t *testing.T) {
	t.Parallel()

	tests := []struct {
		href string
		want string
	}{
		{"", ""},
		{"page.md", "page.html"},
		{"page.md#top", "page.html#top"},
		{"dir/", "dir/"},
		{"page.mdx", "page.mdx"},
		{"http://example.com/page.md", "http://example.com/page.md"},
		{"#page.md", "#page.md"},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			t.Parallel()

			if got := rewriteHref(tt.href); got != tt.want {
				t.Errorf("rewriteHref(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}
