package md2html

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// PageResult describes one generated page.
type PageResult struct {
	Source string // Markdown path
	Dest   string // HTML path
	Title  string
	Bytes  int64 // Size of the written page

	page string // Page HTML, kept for PDF export
}

// GeneratePage converts the Markdown file src into a complete page at dest,
// creating missing parent directories. Nothing is written when any step
// before the write fails.
func (c *Converter) GeneratePage(ctx context.Context, src, dest string) (*PageResult, error) {
	if !fileutil.IsMarkdown(src) {
		return nil, fmt.Errorf("%w: %s", ErrNotMarkdown, src)
	}

	content, err := os.ReadFile(src) // #nosec G304 -- discovered or user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	res, err := c.Convert(ctx, Input{Markdown: string(content), FullPage: true})
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := fileutil.WriteFile(dest, []byte(res.Page)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWritePage, err)
	}

	return &PageResult{
		Source: src,
		Dest:   dest,
		Title:  res.Title,
		Bytes:  int64(len(res.Page)),
		page:   res.Page,
	}, nil
}

// ExportPDF renders a generated page to a PDF file at dest, with the
// stylesheet inlined. Returns the number of bytes written.
func (c *Converter) ExportPDF(ctx context.Context, page *PageResult, dest string) (int64, error) {
	styled, err := c.cssInjector.InjectCSS(ctx, page.page, c.style)
	if err != nil {
		return 0, err
	}

	// Printed from the page's directory so relative images resolve.
	pdf, err := c.pdfConverter.ToPDF(ctx, styled, filepath.Dir(page.Dest))
	if err != nil {
		return 0, err
	}

	if err := fileutil.WriteFile(dest, pdf); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrWritePage, err)
	}
	return int64(len(pdf)), nil
}
