// Package assets provides the page template and stylesheet of a site.
//
// Assets come in two kinds: templates ({name}.html, with {{ Title }} and
// {{ Content }} placeholders) and stylesheets ({name}.css). A Stack looks
// a name up in an ordered list of sources:
//
//	Stack
//	  ├── directory  {assetsDir}/{name}.html, {assetsDir}/{name}.css
//	  └── embedded   templates/default.html, static/index.css
//
// The first source holding the asset wins, so a site can override its
// template and keep the built-in stylesheet, or the reverse. Any error
// other than "not found" stops the lookup.
//
// Names are validated before any source is consulted. Directory reads go
// through os.Root, so a symlink cannot lead outside the assets directory.
//
// The embedded static tree also seeds the output directory of a site that
// has no static directory of its own (see StaticFS).
package assets
