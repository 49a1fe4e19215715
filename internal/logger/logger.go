// Package logger wraps charm/log with the events of a site build.
package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging.
type Logger struct {
	*log.Logger
}

// New creates a logger writing Info and above to w.
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level.
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return NewWithLevel(io.Discard, log.FatalLevel)
}

// LevelFor maps the CLI verbosity flags to a level.
// quiet wins over verbose.
func LevelFor(verbose, quiet bool) log.Level {
	switch {
	case quiet:
		return log.ErrorLevel
	case verbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

// BuildStarted logs the directories of a site build.
func (l *Logger) BuildStarted(contentDir, staticDir, outputDir string) {
	l.Info("build started",
		"content", contentDir,
		"static", staticDir,
		"output", outputDir)
}

// StaticCopied logs the static tree copy.
func (l *Logger) StaticCopied(files int, bytes string) {
	l.Info("static copied",
		"files", files,
		"size", bytes)
}

// PageGenerated logs a page written to disk.
func (l *Logger) PageGenerated(source, dest, title string) {
	l.Debug("page generated",
		"source", source,
		"dest", dest,
		"title", title)
}

// PDFGenerated logs a PDF exported from a page.
func (l *Logger) PDFGenerated(page, dest string) {
	l.Debug("pdf generated",
		"page", page,
		"dest", dest)
}

// PageFailed logs an error for a specific page.
func (l *Logger) PageFailed(source string, err error) {
	l.Error("page failed",
		"source", source,
		"error", err)
}

// BuildCompleted logs the build summary.
func (l *Logger) BuildCompleted(pages, failed int, written string, duration time.Duration) {
	l.Info("build completed",
		"pages", pages,
		"failed", failed,
		"written", written,
		"duration", duration.Round(time.Millisecond))
}

// ConfigLoaded logs the config file in use.
func (l *Logger) ConfigLoaded(path string) {
	l.Debug("config loaded", "path", path)
}
