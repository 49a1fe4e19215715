package main

import (
	"context"
	"errors"
	"os"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/hints"
)

// Exit codes for md2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build or conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or assets
	ExitIO      = 3 // File not found, permission denied
	ExitContent = 4 // Markdown that cannot be converted
	ExitBrowser = 5 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 5)
	if errors.Is(err, md2html.ErrBrowserConnect) ||
		errors.Is(err, md2html.ErrPageCreate) ||
		errors.Is(err, md2html.ErrPageLoad) ||
		errors.Is(err, md2html.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Content errors (exit 4)
	if errors.Is(err, md2html.ErrMalformedInline) ||
		errors.Is(err, md2html.ErrMissingTitle) ||
		errors.Is(err, md2html.ErrEmptyDocument) ||
		errors.Is(err, md2html.ErrInvalidInput) ||
		errors.Is(err, md2html.ErrResourceLimit) ||
		errors.Is(err, md2html.ErrStructural) ||
		errors.Is(err, md2html.ErrHTMLConversion) {
		return ExitContent
	}

	// Usage/config/asset errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2html.ErrUnknownEngine) ||
		errors.Is(err, md2html.ErrStyleNotFound) ||
		errors.Is(err, md2html.ErrTemplateNotFound) ||
		errors.Is(err, md2html.ErrInvalidAssetPath) ||
		errors.Is(err, md2html.ErrInvalidAssetName) ||
		errors.Is(err, md2html.ErrMissingPlaceholder) ||
		errors.Is(err, md2html.ErrNotMarkdown) ||
		errors.Is(err, fileutil.ErrUnsafeRemove) ||
		errors.Is(err, md2html.ErrOutputOverlap) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2html.ErrReadMarkdown) ||
		errors.Is(err, md2html.ErrAssetRead) ||
		errors.Is(err, md2html.ErrWritePage) ||
		errors.Is(err, md2html.ErrContentDir) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, md2html.ErrBrowserConnect):
		return hints.ForBrowserConnect(hints.System)
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.UserDir())
	case errors.Is(err, md2html.ErrContentDir):
		return hints.ForContentDir()
	case errors.Is(err, md2html.ErrMissingTitle):
		return hints.ForMissingTitle()
	case errors.Is(err, md2html.ErrMalformedInline):
		return hints.ForMalformedInline()
	case errors.Is(err, md2html.ErrMissingPlaceholder):
		return hints.ForMissingPlaceholder()
	case errors.Is(err, md2html.ErrEmptyDocument):
		return hints.ForEmptyDocument()
	case errors.Is(err, md2html.ErrWritePage):
		return hints.ForOutputDirectory()
	case errors.Is(err, md2html.ErrOutputOverlap):
		return hints.ForOutputOverlap()
	}
	return ""
}
