package pipeline

import (
	"errors"
	"strings"

	"github.com/alnah/go-md2html/internal/block"
)

// ErrMissingTitle indicates a document has no non-empty level-one heading.
var ErrMissingTitle = errors.New("no title: document needs a \"# \" heading")

const titleMarker = "# "

// ExtractTitle returns the text of the first level-one heading block.
// Headings are found the way the document is rendered, so a "# " line
// inside a code fence or a paragraph is not a title.
// Fails with ErrMissingTitle if there is none or if the first one is blank.
func ExtractTitle(markdown string) (string, error) {
	for _, b := range SplitBlocks(normalizeLineEndings(markdown)) {
		if kind := block.Classify(b); kind.Type != block.Heading || kind.Level != 1 {
			continue
		}
		first, _, _ := strings.Cut(b, "\n")
		title := strings.TrimSpace(strings.TrimPrefix(first, titleMarker))
		if title == "" {
			return "", ErrMissingTitle
		}
		return title, nil
	}
	return "", ErrMissingTitle
}
