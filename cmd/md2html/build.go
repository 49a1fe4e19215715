package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/logger"
)

// runBuild generates the site.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: build takes no arguments, got %q", ErrUsage, positional[0])
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	log := logger.NewWithLevel(env.Stderr, logger.LevelFor(flags.common.verbose, flags.common.quiet))
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(log)

	cfg, err := resolveConfig(flags.common.config, envCfg, log)
	if err != nil {
		return err
	}
	mergeBuildFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.pdf.timeout, envCfg.PDFTimeout, cfg.PDF.Timeout)
	if err != nil {
		return err
	}

	log.BuildStarted(cfg.Site.ContentDir, cfg.Site.StaticDir, cfg.Site.OutputDir)
	log.Debug("pool", "workers", md2html.ResolvePoolSize(cfg.Convert.Workers))

	builder := md2html.NewBuilder(md2html.SiteOptions{
		ContentDir: cfg.Site.ContentDir,
		StaticDir:  cfg.Site.StaticDir,
		OutputDir:  cfg.Site.OutputDir,
		Workers:    cfg.Convert.Workers,
		PDF:        cfg.PDF.Enabled,
		Converter:  converterOptions(cfg, timeout),
		OnPage:     func(p md2html.PageReport) { logPage(log, p) },
	})

	report, err := builder.Build(ctx)
	if err != nil {
		return err
	}

	log.StaticCopied(report.Static.Files, humanize.Bytes(uint64(max(report.Static.Bytes, 0)))) // #nosec G115 -- clamped to non-negative
	if report.Static.Embedded {
		log.Debug("static directory not found, used embedded defaults", "dir", cfg.Site.StaticDir)
	}
	log.BuildCompleted(report.Succeeded(), report.Failed(),
		humanize.Bytes(uint64(max(report.BytesWritten(), 0))), // #nosec G115 -- clamped to non-negative
		report.Duration)

	return firstPageError(report)
}

// mergeBuildFlags merges CLI flags into config. CLI values override config values.
func mergeBuildFlags(flags *buildFlags, cfg *config.Config) {
	setIfNotEmpty(&cfg.Site.ContentDir, flags.site.content)
	setIfNotEmpty(&cfg.Site.StaticDir, flags.site.static)
	setIfNotEmpty(&cfg.Site.OutputDir, flags.site.output)
	mergeEngineFlags(flags.engine, flags.assets, cfg)
	if flags.workers > 0 {
		cfg.Convert.Workers = flags.workers
	}
	if flags.pdf.enabled {
		cfg.PDF.Enabled = true
	}
}

// logPage logs the outcome of one page.
func logPage(log *logger.Logger, p md2html.PageReport) {
	if p.Err != nil {
		log.PageFailed(p.Source, p.Err)
		return
	}
	log.PageGenerated(p.Source, p.Dest, p.Title)
	if p.PDF != "" {
		log.PDFGenerated(p.Dest, p.PDF)
	}
}

// firstPageError returns nil when every page succeeded, otherwise the
// first failure in walk order, wrapped so its exit code is preserved.
func firstPageError(report *md2html.BuildReport) error {
	for _, p := range report.Pages {
		if p.Err != nil {
			return fmt.Errorf("%d of %d pages failed, first %s: %w",
				report.Failed(), len(report.Pages), p.Source, p.Err)
		}
	}
	return nil
}
