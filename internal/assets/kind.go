package assets

import (
	"fmt"
	"strings"
)

// Names of the built-in assets.
const (
	DefaultTemplateName = "default"
	DefaultStyleName    = "index"
)

// MaxAssetNameLength bounds template and style names.
const MaxAssetNameLength = 64

// kind is a family of assets sharing an extension and an embedded directory.
type kind struct {
	ext      string
	dir      string
	notFound error
}

var (
	templateKind = kind{ext: ".html", dir: "templates", notFound: ErrTemplateNotFound}
	styleKind    = kind{ext: ".css", dir: "static", notFound: ErrStyleNotFound}
)

func (k kind) file(name string) string {
	return name + k.ext
}

func (k kind) missing(name string) error {
	return fmt.Errorf("%w: %q", k.notFound, name)
}

// ValidateAssetName reports whether name can be used as a bare file name.
// Separators and dots are rejected, so a name never selects another
// directory or extension.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > MaxAssetNameLength:
		return fmt.Errorf("%w: %d chars (max %d)", ErrInvalidAssetName, len(name), MaxAssetNameLength)
	case strings.ContainsAny(name, "/\\.\x00"):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
