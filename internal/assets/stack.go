package assets

import "errors"

// Stack resolves templates and stylesheets through an ordered list of
// sources. It satisfies md2html.AssetLoader.
type Stack struct {
	sources []source
	dir     string
}

// builtin only holds the embedded assets.
var builtin = &Stack{sources: []source{embeddedSource{}}}

// NewStack returns a Stack over the embedded assets. When dir is set, its
// files take precedence. Returns ErrInvalidBasePath if dir is set but is
// not a directory.
func NewStack(dir string) (*Stack, error) {
	if dir == "" {
		return builtin, nil
	}
	d, err := newDirSource(dir)
	if err != nil {
		return nil, err
	}
	return &Stack{sources: []source{d, embeddedSource{}}, dir: d.path}, nil
}

// Dir returns the absolute override directory, or "" when only the
// embedded assets are used.
func (s *Stack) Dir() string { return s.dir }

// LoadTemplate returns the page template called name.
func (s *Stack) LoadTemplate(name string) (string, error) {
	return s.load(templateKind, name)
}

// LoadStyle returns the stylesheet called name.
func (s *Stack) LoadStyle(name string) (string, error) {
	return s.load(styleKind, name)
}

func (s *Stack) load(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	for _, src := range s.sources {
		content, err := src.read(k, name)
		if errors.Is(err, k.notFound) {
			continue
		}
		return content, err
	}
	return "", k.missing(name)
}

// LoadTemplate returns a built-in page template.
func LoadTemplate(name string) (string, error) { return builtin.LoadTemplate(name) }

// LoadStyle returns a built-in stylesheet.
func LoadStyle(name string) (string, error) { return builtin.LoadStyle(name) }
