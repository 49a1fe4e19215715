package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

//go:embed static templates
var embedded embed.FS

// source reads one asset. It returns the kind's not-found error when it
// does not hold the asset.
type source interface {
	read(k kind, name string) (string, error)
}

// embeddedSource serves the assets compiled into the binary.
type embeddedSource struct{}

func (embeddedSource) read(k kind, name string) (string, error) {
	data, err := embedded.ReadFile(path.Join(k.dir, k.file(name)))
	if err != nil {
		return "", k.missing(name)
	}
	return string(data), nil
}

// dirSource serves assets from a flat directory on disk.
type dirSource struct {
	path string
}

func newDirSource(dir string) (*dirSource, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
	}
	return &dirSource{path: abs}, nil
}

func (d *dirSource) read(k kind, name string) (string, error) {
	root, err := os.OpenRoot(d.path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	defer root.Close()

	data, err := root.ReadFile(k.file(name))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", k.missing(name)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

// StaticFS returns the embedded static tree with index.css at its root.
func StaticFS() fs.FS {
	sub, err := fs.Sub(embedded, styleKind.dir)
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}
