package md2html

import (
	"context"
	"fmt"

	"github.com/alnah/go-md2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.NormalizingPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.NativeConverter)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.TemplateInjector     = (*pipeline.PageTemplate)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ pdfConverter                  = (*chromePDF)(nil)
)

// Converter orchestrates the Markdown to HTML pipeline.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
// Convert is safe for concurrent use; ToPDF is not.
type Converter struct {
	cfg           converterConfig
	assetLoader   AssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	pageTemplate  pipeline.TemplateInjector
	cssInjector   pipeline.CSSInjector
	style         string
	pdfConverter  pdfConverter
}

// NewConverter creates a Converter with default configuration: native
// engine, empty documents allowed, embedded template and stylesheet.
// Returns error if the engine is unknown or asset loading fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:      defaultTimeout,
			templateName: DefaultTemplate,
			styleName:    DefaultStyle,
		},
		preprocessor: &pipeline.NormalizingPreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.assetLoader == nil {
		loader, err := NewAssetLoader(c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		c.assetLoader = loader
	}

	if c.htmlConverter == nil {
		hc, err := pipeline.NewConverter(c.cfg.engine, c.cfg.emptyPolicy)
		if err != nil {
			return nil, err
		}
		c.htmlConverter = hc
	}

	if c.pageTemplate == nil {
		tmpl, err := c.assetLoader.LoadTemplate(c.cfg.templateName)
		if err != nil {
			return nil, fmt.Errorf("loading template %q: %w", c.cfg.templateName, err)
		}
		c.pageTemplate, err = pipeline.NewPageTemplate(tmpl)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", c.cfg.templateName, err)
		}
	}

	style, err := c.assetLoader.LoadStyle(c.cfg.styleName)
	if err != nil {
		return nil, fmt.Errorf("loading style %q: %w", c.cfg.styleName, err)
	}
	c.style = style

	// Browser is started lazily on the first ToPDF call.
	if c.pdfConverter == nil {
		c.pdfConverter = newChromePDF(c.cfg.timeout)
	}

	return c, nil
}

// Convert runs the pipeline and returns the title, the fragment and, when
// requested, the complete page.
// The context is used for cancellation between stages.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	// Preprocess markdown
	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Convert to HTML
	fragment, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	if c.cfg.rewriteLinks {
		fragment, err = pipeline.RewriteLinks(fragment)
		if err != nil {
			return nil, fmt.Errorf("rewriting links: %w", err)
		}
	}

	res := &ConvertResult{Fragment: fragment}

	title, titleErr := pipeline.ExtractTitle(mdContent)
	if !input.FullPage && !input.InlineStyle {
		if titleErr == nil {
			res.Title = title
		}
		return res, nil
	}
	if titleErr != nil {
		return nil, titleErr
	}
	res.Title = title

	page, err := c.pageTemplate.InjectPage(ctx, pipeline.PageData{Title: title, Content: fragment})
	if err != nil {
		return nil, fmt.Errorf("applying template: %w", err)
	}

	if input.InlineStyle {
		page, err = c.cssInjector.InjectCSS(ctx, page, c.style)
		if err != nil {
			return nil, err
		}
	}

	res.Page = page
	return res, nil
}

// ToPDF renders a complete HTML page to PDF with headless Chrome.
// The page should carry its stylesheet inline (Input.InlineStyle), since
// it is loaded from a temporary file.
func (c *Converter) ToPDF(ctx context.Context, page string) ([]byte, error) {
	return c.pdfConverter.ToPDF(ctx, page, "")
}

// Close releases resources (headless Chrome browser, if started).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}
