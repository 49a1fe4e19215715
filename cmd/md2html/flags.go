package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command-line usage: unknown flags, bad values,
// wrong argument counts.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags holds the directory layout of a site build.
type siteFlags struct {
	content string
	static  string
	output  string
}

// assetFlags holds template and stylesheet overrides.
type assetFlags struct {
	assetsDir string
	template  string
}

// engineFlags holds Markdown conversion settings.
type engineFlags struct {
	engine       string
	empty        string
	rewriteLinks bool
}

// pdfFlags holds PDF export settings.
type pdfFlags struct {
	enabled bool
	timeout string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common  commonFlags
	site    siteFlags
	assets  assetFlags
	engine  engineFlags
	pdf     pdfFlags
	workers int
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	assets      assetFlags
	engine      engineFlags
	output      string
	page        bool
	inlineStyle bool
	style       string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show every page and timing")
}

// addSiteFlags adds site layout flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.content, "content", "", "Markdown source directory (default: content)")
	fs.StringVar(&f.static, "static", "", "static files directory (default: static)")
	fs.StringVarP(&f.output, "output", "o", "", "output directory, wiped on build (default: public)")
}

// addAssetFlags adds asset flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.assetsDir, "assets", "", "directory with template and stylesheet overrides")
	fs.StringVar(&f.template, "template", "", "page template name (default: default)")
}

// addEngineFlags adds conversion flags to a FlagSet.
func addEngineFlags(fs *flag.FlagSet, f *engineFlags) {
	fs.StringVar(&f.engine, "engine", "", "conversion engine: native, goldmark")
	fs.StringVar(&f.empty, "empty", "", "empty document policy: allow, reject")
	fs.BoolVar(&f.rewriteLinks, "rewrite-links", false, "point relative .md links at generated pages")
}

// addPDFFlags adds PDF export flags to a FlagSet.
func addPDFFlags(fs *flag.FlagSet, f *pdfFlags) {
	fs.BoolVar(&f.enabled, "pdf", false, "also export each page to PDF (requires Chrome)")
	fs.StringVar(&f.timeout, "pdf-timeout", "", "PDF generation timeout per page (e.g., 30s, 2m)")
}

// newBuildFlagSet registers the build command flags into f.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	addAssetFlags(fs, &f.assets)
	addEngineFlags(fs, &f.engine)
	addPDFFlags(fs, &f.pdf)
	return fs
}

// newConvertFlagSet registers the convert command flags into f.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.BoolVar(&f.page, "page", false, "wrap the fragment in the page template")
	fs.BoolVar(&f.inlineStyle, "inline-style", false, "full page with the stylesheet inlined")
	fs.StringVar(&f.style, "style", "", "stylesheet name for --inline-style (default: index)")

	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addEngineFlags(fs, &f.engine)
	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, usage io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(f)
	if err := parse(fs, args, usage, printBuildUsage); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	if err := parse(fs, args, usage, printConvertUsage); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parse runs fs.Parse silently. -h prints the command usage to w and
// returns flag.ErrHelp; other failures are wrapped in ErrUsage.
func parse(fs *flag.FlagSet, args []string, w io.Writer, printUsage func(io.Writer)) error {
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	err := fs.Parse(args)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, flag.ErrHelp):
		printUsage(w)
		return err
	default:
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
}
