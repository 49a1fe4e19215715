package md2html

// Notes:
// - Tests Converter.Convert with mocked pipeline components to isolate unit logic
// - Internal test options (withHTMLConverter, etc.) enable dependency injection
// - The real native and goldmark engines are also exercised end to end, since
//   they need no browser
// - PDF rendering is mocked; browser behavior is out of unit test scope

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2html/internal/pipeline"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockHTMLConverter struct {
	called bool
	input  string
	output string
	err    error
	panics bool
}

func (m *mockHTMLConverter) ToHTML(ctx context.Context, content string) (string, error) {
	m.called = true
	m.input = content
	if m.panics {
		panic("boom")
	}
	if m.err != nil {
		return "", m.err
	}
	if m.output != "" {
		return m.output, nil
	}
	return "<div>" + content + "</div>", nil
}

type mockPDFConverter struct {
	called    bool
	inputHTML string
	dir       string
	output    []byte
	err       error
	closed    bool
}

func (m *mockPDFConverter) ToPDF(ctx context.Context, htmlContent, dir string) ([]byte, error) {
	m.called = true
	m.inputHTML = htmlContent
	m.dir = dir
	if m.err != nil {
		return nil, m.err
	}
	if m.output != nil {
		return m.output, nil
	}
	return []byte("%PDF-1.4 mock"), nil
}

func (m *mockPDFConverter) Close() error {
	m.closed = true
	return nil
}

type mockAssetLoader struct {
	template string
	style    string
	err      error
}

func (m *mockAssetLoader) LoadStyle(name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.style, nil
}

func (m *mockAssetLoader) LoadTemplate(name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.template, nil
}

// ---------------------------------------------------------------------------
// Test Options
// ---------------------------------------------------------------------------

func withHTMLConverter(hc pipeline.HTMLConverter) Option {
	return func(c *Converter) {
		c.htmlConverter = hc
	}
}

func withPDFConverter(pc pdfConverter) Option {
	return func(c *Converter) {
		c.pdfConverter = pc
	}
}

// ---------------------------------------------------------------------------
// TestNewConverter - Construction and options
// ---------------------------------------------------------------------------

func TestNewConverter(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer conv.Close()

	if conv.cfg.templateName != DefaultTemplate {
		t.Errorf("templateName = %q, want %q", conv.cfg.templateName, DefaultTemplate)
	}
	if conv.cfg.timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", conv.cfg.timeout, defaultTimeout)
	}
	if _, ok := conv.htmlConverter.(*pipeline.NativeConverter); !ok {
		t.Errorf("htmlConverter = %T, want *pipeline.NativeConverter", conv.htmlConverter)
	}
	if conv.style == "" {
		t.Error("style is empty, want embedded stylesheet")
	}
}

func TestNewConverter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{
			name:    "unknown engine",
			opts:    []Option{WithEngine("pandoc")},
			wantErr: ErrUnknownEngine,
		},
		{
			name:    "missing asset path",
			opts:    []Option{WithAssetPath(filepath.Join(t.TempDir(), "missing"))},
			wantErr: ErrInvalidAssetPath,
		},
		{
			name:    "unknown template",
			opts:    []Option{WithTemplate("nonexistent")},
			wantErr: ErrTemplateNotFound,
		},
		{
			name:    "unknown style",
			opts:    []Option{WithStyle("nonexistent")},
			wantErr: ErrStyleNotFound,
		},
		{
			name:    "template without placeholders",
			opts:    []Option{WithAssetLoader(&mockAssetLoader{template: "<html></html>"})},
			wantErr: ErrMissingPlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewConverter(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	t.Run("sets timeout", func(t *testing.T) {
		t.Parallel()

		conv, err := NewConverter(WithTimeout(time.Minute))
		if err != nil {
			t.Fatalf("NewConverter() error = %v", err)
		}
		if conv.cfg.timeout != time.Minute {
			t.Errorf("timeout = %v, want 1m", conv.cfg.timeout)
		}
	})

	t.Run("panics on non-positive duration", func(t *testing.T) {
		t.Parallel()

		defer func() {
			if recover() == nil {
				t.Error("WithTimeout(0) did not panic")
			}
		}()
		WithTimeout(0)
	})
}

func TestWithAssetPath_OverridesTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tmpl := "<title>{{ Title }}</title><main>{{ Content }}</main>"
	if err := os.WriteFile(filepath.Join(dir, "blog.html"), []byte(tmpl), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	conv, err := NewConverter(WithAssetPath(dir), WithTemplate("blog"))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	res, err := conv.Convert(context.Background(), Input{Markdown: "# Post\n\nHi", FullPage: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	want := "<title>Post</title><main><div><div><h1>Post</h1></div><div>Hi</div></div></main>"
	if res.Page != want {
		t.Errorf("Page = %q, want %q", res.Page, want)
	}
}

// ---------------------------------------------------------------------------
// TestConvert - Pipeline data flow
// ---------------------------------------------------------------------------

func TestConvert_Fragment(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	res, err := conv.Convert(context.Background(), Input{Markdown: "# Hello\r\n\r\n- a\r\n- b"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	wantFragment := "<div><div><h1>Hello</h1></div><div><ul><li>a</li><li>b</li></ul></div></div>"
	if res.Fragment != wantFragment {
		t.Errorf("Fragment = %q, want %q", res.Fragment, wantFragment)
	}
	if res.Title != "Hello" {
		t.Errorf("Title = %q, want %q", res.Title, "Hello")
	}
	if res.Page != "" {
		t.Errorf("Page = %q, want empty without FullPage", res.Page)
	}
}

func TestConvert_FragmentWithoutTitle(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	res, err := conv.Convert(context.Background(), Input{Markdown: "no heading"})
	if err != nil {
		t.Fatalf("Convert() error = %v, want nil (title optional for fragments)", err)
	}
	if res.Title != "" {
		t.Errorf("Title = %q, want empty", res.Title)
	}
}

func TestConvert_FullPage(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	res, err := conv.Convert(context.Background(), Input{Markdown: "# Fish & Chips\n\ntext", FullPage: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Fish &amp; Chips</title>",
		res.Fragment,
		`<link href="/index.css" rel="stylesheet">`,
	} {
		if !strings.Contains(res.Page, want) {
			t.Errorf("Page missing %q", want)
		}
	}
	if strings.Contains(res.Page, "<style>") {
		t.Error("Page has inline style without InlineStyle")
	}
}

func TestConvert_InlineStyle(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithAssetLoader(&mockAssetLoader{
		template: "<html><head><title>{{ Title }}</title></head><body>{{ Content }}</body></html>",
		style:    "body { color: red; }",
	}))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	res, err := conv.Convert(context.Background(), Input{Markdown: "# T", InlineStyle: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	want := "<html><head><title>T</title><style>body { color: red; }</style></head><body><div><div><h1>T</h1></div></div></body></html>"
	if res.Page != want {
		t.Errorf("Page = %q, want %q", res.Page, want)
	}
}

func TestConvert_FullPageRequiresTitle(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	_, err = conv.Convert(context.Background(), Input{Markdown: "## only h2", FullPage: true})
	if !errors.Is(err, ErrMissingTitle) {
		t.Errorf("Convert() error = %v, want ErrMissingTitle", err)
	}
}

func TestConvert_RewriteLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		enabled bool
		want    string
	}{
		{"enabled", true, `<a href="other.html">other</a>`},
		{"disabled", false, `<a href="other.md">other</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, err := NewConverter(WithRewriteLinks(tt.enabled))
			if err != nil {
				t.Fatalf("NewConverter() error = %v", err)
			}
			res, err := conv.Convert(context.Background(), Input{Markdown: "see [other](other.md)"})
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if !strings.Contains(res.Fragment, tt.want) {
				t.Errorf("Fragment = %q, want to contain %q", res.Fragment, tt.want)
			}
		})
	}
}

func TestConvert_EmptyDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		policy  EmptyDocumentPolicy
		want    string
		wantErr error
	}{
		{"allow", EmptyAllow, "<div></div>", nil},
		{"reject", EmptyReject, "", ErrEmptyDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, err := NewConverter(WithEmptyDocument(tt.policy))
			if err != nil {
				t.Fatalf("NewConverter() error = %v", err)
			}
			res, err := conv.Convert(context.Background(), Input{Markdown: "\n\n  \n"})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
				}
				if !errors.Is(err, ErrStructural) {
					t.Errorf("Convert() error = %v, want it to wrap ErrStructural", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if res.Fragment != tt.want {
				t.Errorf("Fragment = %q, want %q", res.Fragment, tt.want)
			}
		})
	}
}

func TestConvert_GoldmarkEngine(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithEngine(EngineGoldmark))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	res, err := conv.Convert(context.Background(), Input{Markdown: "# Doc\n\n| a | b |\n|---|---|\n| 1 | 2 |"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(res.Fragment, "<table>") {
		t.Errorf("Fragment = %q, want a table", res.Fragment)
	}
	if res.Title != "Doc" {
		t.Errorf("Title = %q, want %q", res.Title, "Doc")
	}
}

func TestConvert_MalformedInline(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	_, err = conv.Convert(context.Background(), Input{Markdown: "# Ok\n\nbroken **bold"})
	if !errors.Is(err, ErrMalformedInline) {
		t.Errorf("Convert() error = %v, want ErrMalformedInline", err)
	}
	if err != nil && !strings.Contains(err.Error(), "block 2") {
		t.Errorf("Convert() error = %q, want it to name the block", err)
	}
}

func TestConvert_HTMLConverterError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("engine failed")
	hc := &mockHTMLConverter{err: wantErr}
	conv, err := NewConverter(withHTMLConverter(hc))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	_, err = conv.Convert(context.Background(), Input{Markdown: "# T"})
	if !errors.Is(err, wantErr) {
		t.Errorf("Convert() error = %v, want %v", err, wantErr)
	}
}

func TestConvert_PreprocessesBeforeEngine(t *testing.T) {
	t.Parallel()

	hc := &mockHTMLConverter{}
	conv, err := NewConverter(withHTMLConverter(hc))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	if _, err := conv.Convert(context.Background(), Input{Markdown: "\uFEFF# T\r\nx"}); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if hc.input != "# T\nx" {
		t.Errorf("engine input = %q, want %q", hc.input, "# T\nx")
	}
}

func TestConvert_RecoversPanic(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(withHTMLConverter(&mockHTMLConverter{panics: true}))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	_, err = conv.Convert(context.Background(), Input{Markdown: "# T"})
	if err == nil || !strings.Contains(err.Error(), "internal error") {
		t.Errorf("Convert() error = %v, want internal error", err)
	}
}

func TestConvert_ContextCancellation(t *testing.T) {
	t.Parallel()

	hc := &mockHTMLConverter{}
	conv, err := NewConverter(withHTMLConverter(hc))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = conv.Convert(ctx, Input{Markdown: "# T"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
	if hc.called {
		t.Error("engine called after cancellation")
	}
}

// ---------------------------------------------------------------------------
// TestToPDF - Delegation to the PDF backend
// ---------------------------------------------------------------------------

func TestToPDF(t *testing.T) {
	t.Parallel()

	pc := &mockPDFConverter{}
	conv, err := NewConverter(withPDFConverter(pc))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	got, err := conv.ToPDF(context.Background(), "<html></html>")
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	if string(got) != "%PDF-1.4 mock" {
		t.Errorf("ToPDF() = %q", got)
	}
	if pc.inputHTML != "<html></html>" {
		t.Errorf("backend input = %q", pc.inputHTML)
	}

	if err := conv.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !pc.closed {
		t.Error("Close() did not close the PDF backend")
	}
}

func TestConverter_CloseNilBackend(t *testing.T) {
	t.Parallel()

	conv := &Converter{}
	if err := conv.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}
