// Package pipeline implements the Markdown-to-HTML conversion pipeline.
//
// This package handles the document-level stages:
//   - Markdown preprocessing (line ending normalization)
//   - Splitting a document into blank-line-delimited blocks
//   - Assembling rendered blocks into one fragment (native engine)
//   - Full CommonMark conversion via Goldmark (goldmark engine)
//   - Title extraction from the first level-one heading
//   - Page template substitution
//   - Rewriting relative Markdown links to their generated HTML pages
//
// Block classification and rendering live in internal/block; inline
// tokenizing lives in internal/inline. File I/O is handled by the root
// md2html package, which keeps this package free of side effects.
package pipeline
