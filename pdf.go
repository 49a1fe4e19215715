package md2html

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/process"
)

// pdfConverter renders a complete HTML page to PDF. Relative URLs in the
// page resolve against dir; an empty dir means the system temp directory.
type pdfConverter interface {
	ToPDF(ctx context.Context, page, dir string) ([]byte, error)
	Close() error
}

// A4 with half-inch margins.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 0.5
)

// chromePDF prints pages with a headless Chrome launched on first use.
// Rod downloads Chromium when no browser is found.
// It is not safe for concurrent use; the site builder gives each worker
// its own Converter.
type chromePDF struct {
	timeout time.Duration
	getenv  func(string) string

	// print loads a file URL and prints it. Tests replace it.
	print func(ctx context.Context, fileURL string) ([]byte, error)

	launcher *launcher.Launcher
	browser  *rod.Browser
}

func newChromePDF(timeout time.Duration) *chromePDF {
	c := &chromePDF{timeout: timeout, getenv: os.Getenv}
	c.print = c.printURL
	return c
}

// ToPDF writes page to a hidden file in dir, so that images and links
// relative to the page resolve, and prints it.
func (c *chromePDF) ToPDF(ctx context.Context, page, dir string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(dir, page, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	return c.print(ctx, fileURL(abs))
}

// fileURL turns an absolute path into a file:// URL, Windows drives included.
func fileURL(abs string) string {
	p := filepath.ToSlash(abs)
	if p[0] != '/' {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// noSandbox reports whether Chrome must run without its sandbox, which
// fails inside most containers and CI runners.
func (c *chromePDF) noSandbox() bool {
	return c.getenv("ROD_NO_SANDBOX") == "1" ||
		c.getenv("CI") == "true" ||
		c.getenv("ROD_BROWSER_BIN") != ""
}

func (c *chromePDF) connect() error {
	if c.browser != nil {
		return nil
	}

	l := launcher.New().NoSandbox(c.noSandbox())
	if bin := c.getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	c.launcher = l

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		c.kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	c.browser = browser
	return nil
}

// printURL loads fileURL in a new tab and prints it with printOptions.
func (c *chromePDF) printURL(ctx context.Context, fileURL string) ([]byte, error) {
	if err := c.connect(); err != nil {
		return nil, err
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}

	page, err := c.browser.Page(proto.TargetCreateTarget{URL: fileURL})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	loaded := page.Context(ctx).Timeout(timeout)
	if err := loaded.WaitLoad(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	stream, err := loaded.PDF(printOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

func printOptions() *proto.PagePrintToPDF {
	inches := func(v float64) *float64 { return &v }
	return &proto.PagePrintToPDF{
		PaperWidth:      inches(paperWidthInches),
		PaperHeight:     inches(paperHeightInches),
		MarginTop:       inches(marginInches),
		MarginBottom:    inches(marginInches),
		MarginLeft:      inches(marginInches),
		MarginRight:     inches(marginInches),
		PrintBackground: true,
	}
}

// kill terminates the browser process tree. Chrome forks helper processes
// that survive a plain kill of the parent.
func (c *chromePDF) kill() {
	if c.launcher == nil {
		return
	}
	if pid := c.launcher.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	c.launcher.Kill()
	c.launcher = nil
}

// Close shuts the browser down. It is safe to call more than once.
func (c *chromePDF) Close() error {
	var err error
	if c.browser != nil {
		err = c.browser.Close()
		c.browser = nil
	}
	c.kill()
	return err
}
