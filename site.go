package md2html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/fileutil"
)

// SiteOptions configures a site build.
type SiteOptions struct {
	ContentDir string // Markdown sources, required
	StaticDir  string // Copied verbatim; when missing, the embedded stylesheet is used
	OutputDir  string // Wiped and regenerated, required; must not contain the sources
	Workers    int    // 0 = auto (see ResolvePoolSize)
	PDF        bool   // Also export each page to PDF next to its HTML

	// Converter options applied to every worker's converter.
	Converter []Option

	// OnPage is called once per page as it completes. Calls are serialized.
	OnPage func(PageReport)
}

// PageReport holds the outcome of one page.
type PageReport struct {
	Source   string
	Dest     string
	Title    string
	Bytes    int64
	PDF      string // PDF path, empty unless exported
	Err      error
	Duration time.Duration
}

// StaticReport describes the static tree copy.
type StaticReport struct {
	Files    int
	Bytes    int64
	Embedded bool // true when the embedded defaults were used
}

// BuildReport summarizes a site build.
type BuildReport struct {
	Static   StaticReport
	Pages    []PageReport
	Duration time.Duration
}

// Succeeded returns the number of pages generated without error.
func (r *BuildReport) Succeeded() int {
	n := 0
	for _, p := range r.Pages {
		if p.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of pages that failed.
func (r *BuildReport) Failed() int {
	return len(r.Pages) - r.Succeeded()
}

// BytesWritten returns the total size of pages, PDFs and static files.
func (r *BuildReport) BytesWritten() int64 {
	total := r.Static.Bytes
	for _, p := range r.Pages {
		total += p.Bytes
	}
	return total
}

// Err joins the errors of all failed pages, prefixed with their source.
// Returns nil when every page succeeded.
func (r *BuildReport) Err() error {
	var errs []error
	for _, p := range r.Pages {
		if p.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.Source, p.Err))
		}
	}
	return errors.Join(errs...)
}

// Summary returns a one-line human-readable summary.
func (r *BuildReport) Summary() string {
	return fmt.Sprintf("%d pages, %d failed, %s written in %s",
		r.Succeeded(), r.Failed(),
		humanize.Bytes(uint64(max(r.BytesWritten(), 0))), // #nosec G115 -- clamped to non-negative
		r.Duration.Round(time.Millisecond))
}

// Builder generates a static site from a content directory.
type Builder struct {
	opts SiteOptions
}

// NewBuilder creates a Builder.
func NewBuilder(opts SiteOptions) *Builder {
	return &Builder{opts: opts}
}

// pageJob maps one source file to its destination.
type pageJob struct {
	src  string
	dest string
}

// Build wipes the output directory, copies the static tree and generates
// every page. The returned error covers setup failures and cancellation;
// page failures are reported in BuildReport.Pages.
func (b *Builder) Build(ctx context.Context) (*BuildReport, error) {
	start := time.Now()
	report := &BuildReport{}

	if !fileutil.DirExists(b.opts.ContentDir) {
		return nil, fmt.Errorf("%w: %s", ErrContentDir, b.opts.ContentDir)
	}
	if err := b.checkOverlap(); err != nil {
		return nil, err
	}

	// Fail on bad converter options before the output is wiped.
	probe, err := NewConverter(b.opts.Converter...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConverterInit, err)
	}
	_ = probe.Close()

	if err := fileutil.ResetDir(b.opts.OutputDir); err != nil {
		return nil, fmt.Errorf("preparing output directory: %w", err)
	}

	static, err := b.copyStatic()
	if err != nil {
		return nil, fmt.Errorf("copying static files: %w", err)
	}
	report.Static = static

	jobs, err := discoverPages(b.opts.ContentDir, b.opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("discovering pages: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(jobs) > 0 {
		poolSize := min(ResolvePoolSize(b.opts.Workers), len(jobs))
		pool := NewConverterPool(poolSize, b.opts.Converter...)
		defer func() { _ = pool.Close() }()

		report.Pages = b.generatePages(ctx, pool, jobs)
	}

	report.Duration = time.Since(start)
	return report, ctx.Err()
}

// checkOverlap refuses an output directory whose wipe would remove the
// content or static sources. Output nested in the content dir is allowed;
// discovery skips it.
func (b *Builder) checkOverlap() error {
	out := b.opts.OutputDir
	if out == "" {
		return nil
	}
	if fileutil.Contains(out, b.opts.ContentDir) {
		return fmt.Errorf("%w: content %s is inside output %s", ErrOutputOverlap, b.opts.ContentDir, out)
	}
	static := b.opts.StaticDir
	if static != "" && (fileutil.Contains(out, static) || fileutil.Contains(static, out)) {
		return fmt.Errorf("%w: static %s and output %s overlap", ErrOutputOverlap, static, out)
	}
	return nil
}

// copyStatic copies the static directory, or the embedded defaults when it
// does not exist.
func (b *Builder) copyStatic() (StaticReport, error) {
	if b.opts.StaticDir != "" && fileutil.DirExists(b.opts.StaticDir) {
		stats, err := fileutil.CopyDir(b.opts.StaticDir, b.opts.OutputDir)
		return StaticReport{Files: stats.Files, Bytes: stats.Bytes}, err
	}
	stats, err := fileutil.CopyFS(assets.StaticFS(), b.opts.OutputDir)
	return StaticReport{Files: stats.Files, Bytes: stats.Bytes, Embedded: true}, err
}

// discoverPages walks contentDir for Markdown files and mirrors their
// relative paths under outputDir. Results are in lexical order. An output
// directory nested in contentDir is skipped.
func discoverPages(contentDir, outputDir string) ([]pageJob, error) {
	var jobs []pageJob
	cleanOutput := filepath.Clean(outputDir)
	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != contentDir && filepath.Clean(path) == cleanOutput {
			return filepath.SkipDir
		}
		if !d.Type().IsRegular() || !fileutil.IsMarkdown(path) {
			return nil
		}
		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}
		jobs = append(jobs, pageJob{
			src:  path,
			dest: filepath.Join(outputDir, fileutil.HTMLPath(rel)),
		})
		return nil
	})
	return jobs, err
}

// generatePages processes jobs concurrently, one converter per worker.
// Results keep the order of jobs.
func (b *Builder) generatePages(ctx context.Context, pool *ConverterPool, jobs []pageJob) []PageReport {
	results := make([]PageReport, len(jobs))
	queue := make(chan int, len(jobs))
	var wg sync.WaitGroup
	var notifyMu sync.Mutex

	notify := func(r PageReport) {
		if b.opts.OnPage == nil {
			return
		}
		notifyMu.Lock()
		defer notifyMu.Unlock()
		b.opts.OnPage(r)
	}

	for w := 0; w < pool.Size(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Converter creation failed, mark remaining jobs as failed
				for idx := range queue {
					results[idx] = PageReport{Source: jobs[idx].src, Dest: jobs[idx].dest, Err: err}
					notify(results[idx])
				}
				return
			}
			defer pool.Release(conv)

			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = PageReport{Source: jobs[idx].src, Dest: jobs[idx].dest, Err: ctx.Err()}
					notify(results[idx])
					continue
				}
				results[idx] = b.generatePage(ctx, conv, jobs[idx])
				notify(results[idx])
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// generatePage writes one page and, when enabled, its PDF.
func (b *Builder) generatePage(ctx context.Context, conv *Converter, job pageJob) PageReport {
	start := time.Now()
	report := PageReport{Source: job.src, Dest: job.dest}

	page, err := conv.GeneratePage(ctx, job.src, job.dest)
	if err != nil {
		report.Err = err
		report.Duration = time.Since(start)
		return report
	}
	report.Title = page.Title
	report.Bytes = page.Bytes

	if b.opts.PDF {
		pdfPath := pdfPathFor(job.dest)
		n, err := conv.ExportPDF(ctx, page, pdfPath)
		if err != nil {
			report.Err = err
			report.Duration = time.Since(start)
			return report
		}
		report.PDF = pdfPath
		report.Bytes += n
	}

	report.Duration = time.Since(start)
	return report
}

// pdfPathFor maps "public/a.html" to "public/a.pdf".
func pdfPathFor(htmlPath string) string {
	return htmlPath[:len(htmlPath)-len(filepath.Ext(htmlPath))] + ".pdf"
}
