package md2html

import (
	"errors"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/block"
	"github.com/alnah/go-md2html/internal/htmlnode"
	"github.com/alnah/go-md2html/internal/inline"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Sentinel errors of the conversion core. They are the values returned by
// the internal packages, so errors.Is works across package boundaries.
var (
	ErrMalformedInline  = inline.ErrMalformedInline
	ErrInvalidInput     = inline.ErrInvalidInput
	ErrResourceLimit    = inline.ErrResourceLimit
	ErrStructural       = htmlnode.ErrStructural
	ErrUnknownSpanKind  = block.ErrUnknownSpanKind
	ErrUnknownBlockKind = block.ErrUnknownBlockKind
	ErrEmptyDocument    = pipeline.ErrEmptyDocument
	ErrMissingTitle     = pipeline.ErrMissingTitle

	ErrMissingPlaceholder = pipeline.ErrMissingPlaceholder
	ErrHTMLConversion     = pipeline.ErrHTMLConversion
	ErrUnknownEngine      = pipeline.ErrUnknownEngine
)

// Sentinel errors for library operations.
var (
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrWritePage      = errors.New("failed to write page")
	ErrNotMarkdown    = errors.New("file must have .md or .markdown extension")
	ErrContentDir     = errors.New("content directory not found")
	ErrOutputOverlap  = errors.New("output directory overlaps a source directory")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrConverterInit  = errors.New("failed to initialize converter")

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrInvalidAssetName = assets.ErrInvalidAssetName
	ErrAssetRead        = assets.ErrAssetRead
)
