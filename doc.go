// Package md2html converts Markdown documents to HTML and builds static sites
// from a directory of Markdown pages.
//
// # Quick Start
//
// Create a converter, convert markdown, and close when done:
//
//	conv, err := md2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2html.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Title, result.Fragment)
//
// The fragment is a single div holding one div per Markdown block. Set
// Input.FullPage to also substitute title and fragment into the page template.
//
// # Conversion Pipeline
//
//  1. Markdown preprocessing (byte order mark, line endings)
//  2. Block splitting on blank lines
//  3. Block classification (heading, code, quote, lists, paragraph)
//  4. Inline tokenization (bold, code, italic, images, links)
//  5. Node tree assembly and HTML rendering
//  6. Optional link rewriting, page template, inline stylesheet
//
// Steps 2 to 5 form the native engine. WithEngine(EngineGoldmark) swaps them
// for goldmark with GFM extensions and syntax highlighting.
//
// # Lower-level API
//
// The stages are also exposed directly:
//
//	spans, err := md2html.TextToSpans("some **bold** text")
//	kind := md2html.Classify("## Section")
//	node, err := md2html.RenderBlock("## Section", kind)
//	root, err := md2html.ToDocumentFragment("# Title\n\nBody")
//	html, err := root.Render()
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2html.NewConverter(
//	    md2html.WithEngine(md2html.EngineGoldmark),
//	    md2html.WithEmptyDocument(md2html.EmptyReject),
//	    md2html.WithAssetPath("/path/to/custom/assets"),
//	    md2html.WithTemplate("blog"),
//	    md2html.WithRewriteLinks(true),
//	)
//
// # Site Generation
//
// Builder turns a content directory into a public directory: the output is
// wiped, the static directory copied, and every .md page converted with a
// bounded worker pool. Pages mirror their source paths, so content/blog/a.md
// becomes public/blog/a.html.
//
//	report, err := md2html.NewBuilder(md2html.SiteOptions{
//	    ContentDir: "content",
//	    StaticDir:  "static",
//	    OutputDir:  "public",
//	}).Build(ctx)
//
// # PDF Export
//
// Converter.ToPDF renders a full page with headless Chrome (go-rod). The
// browser is started on first use; call Close to release it. Builder exports
// one PDF per page when SiteOptions.PDF is set.
//
// # Error Handling
//
// Errors are sentinel values, test them with errors.Is:
//
//	_, err := md2html.TextToSpans("**unclosed")
//	if errors.Is(err, md2html.ErrMalformedInline) {
//	    // delimiter without its closing pair
//	}
package md2html
