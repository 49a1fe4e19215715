package md2html

// Notes:
// - Printing needs a browser; print is replaced by a fake that reads the
//   file URL it receives. The real path is only covered up to launch.

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fakePrint records what chromePDF hands to the browser.
type fakePrint struct {
	url     string
	content string
	err     error
}

func (f *fakePrint) print(_ context.Context, fileURL string) ([]byte, error) {
	f.url = fileURL
	u, err := url.Parse(fileURL)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.FromSlash(u.Path)) // #nosec G304 -- test temp file
	if err != nil {
		return nil, err
	}
	f.content = string(data)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF"), nil
}

func newFakeChrome(f *fakePrint, env map[string]string) *chromePDF {
	c := newChromePDF(time.Second)
	c.print = f.print
	c.getenv = func(name string) string { return env[name] }
	return c
}

// ---------------------------------------------------------------------------
// TestChromePDF_ToPDF - Temp page lifecycle
// ---------------------------------------------------------------------------

func TestChromePDF_ToPDF(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f := &fakePrint{}
	c := newFakeChrome(f, nil)

	got, err := c.ToPDF(context.Background(), "<html>page</html>", dir)
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	if string(got) != "%PDF" {
		t.Errorf("ToPDF() = %q, want %%PDF", got)
	}
	if f.content != "<html>page</html>" {
		t.Errorf("printed content = %q", f.content)
	}
	if !strings.HasPrefix(f.url, "file:///") || !strings.HasSuffix(f.url, ".html") {
		t.Errorf("url = %q, want file:///...html", f.url)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("temp page left in %s: %v", dir, entries)
	}
}

func TestChromePDF_ToPDFErrors(t *testing.T) {
	t.Parallel()

	t.Run("backend error", func(t *testing.T) {
		t.Parallel()

		c := newFakeChrome(&fakePrint{err: ErrPageLoad}, nil)
		if _, err := c.ToPDF(context.Background(), "<html></html>", t.TempDir()); !errors.Is(err, ErrPageLoad) {
			t.Errorf("ToPDF() error = %v, want ErrPageLoad", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		f := &fakePrint{}
		c := newFakeChrome(f, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := c.ToPDF(ctx, "<html></html>", ""); !errors.Is(err, context.Canceled) {
			t.Errorf("ToPDF() error = %v, want context.Canceled", err)
		}
		if f.url != "" {
			t.Error("printed despite canceled context")
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		c := newFakeChrome(&fakePrint{}, nil)
		_, err := c.ToPDF(context.Background(), "<html></html>", filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrPDFGeneration) {
			t.Errorf("ToPDF() error = %v, want ErrPDFGeneration", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestChromePDF_NoSandbox - Sandbox decision from the environment
// ---------------------------------------------------------------------------

func TestChromePDF_NoSandbox(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"desktop", nil, false},
		{"explicit", map[string]string{"ROD_NO_SANDBOX": "1"}, true},
		{"ci", map[string]string{"CI": "true"}, true},
		{"custom browser", map[string]string{"ROD_BROWSER_BIN": "/usr/bin/chromium"}, true},
		{"explicit zero", map[string]string{"ROD_NO_SANDBOX": "0"}, false},
	}
	for _, tt := range tests {
		c := newFakeChrome(&fakePrint{}, tt.env)
		if got := c.noSandbox(); got != tt.want {
			t.Errorf("%s: noSandbox() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestChromePDF_CloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	c := newChromePDF(time.Second)
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
}

func TestFileURL(t *testing.T) {
	t.Parallel()

	got := fileURL(filepath.Join(string(filepath.Separator), "site", "my page.html"))
	if !strings.HasPrefix(got, "file:///") || !strings.HasSuffix(got, "/site/my%20page.html") {
		t.Errorf("fileURL() = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestPrintOptions - A4 print settings
// ---------------------------------------------------------------------------

func TestPrintOptions(t *testing.T) {
	t.Parallel()

	opts := printOptions()

	checks := []struct {
		name string
		got  *float64
		want float64
	}{
		{"width", opts.PaperWidth, paperWidthInches},
		{"height", opts.PaperHeight, paperHeightInches},
		{"margin top", opts.MarginTop, marginInches},
		{"margin bottom", opts.MarginBottom, marginInches},
		{"margin left", opts.MarginLeft, marginInches},
		{"margin right", opts.MarginRight, marginInches},
	}
	for _, c := range checks {
		if c.got == nil || *c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if !opts.PrintBackground {
		t.Error("PrintBackground = false, want true")
	}
}
