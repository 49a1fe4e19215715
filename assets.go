package md2html

import (
	"errors"
	"fmt"

	"github.com/alnah/go-md2html/internal/assets"
)

// Names of the built-in assets.
const (
	// DefaultTemplate is the name of the built-in page template.
	DefaultTemplate = assets.DefaultTemplateName

	// DefaultStyle is the name of the built-in stylesheet.
	DefaultStyle = assets.DefaultStyleName
)

// AssetLoader provides page templates and stylesheets by name.
// Names carry no extension: "default" resolves a template file
// default.html, "index" a stylesheet index.css.
type AssetLoader interface {
	// LoadStyle returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

var _ AssetLoader = (*assets.Stack)(nil)

// NewAssetLoader returns the built-in assets, overridden by the files of
// dir when dir is set. Returns ErrInvalidAssetPath if dir is set but is not
// a directory.
func NewAssetLoader(dir string) (AssetLoader, error) {
	stack, err := assets.NewStack(dir)
	if errors.Is(err, assets.ErrInvalidBasePath) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	if err != nil {
		return nil, err
	}
	return stack, nil
}
