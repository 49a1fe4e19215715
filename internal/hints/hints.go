// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// Env describes the process environment a hint depends on.
type Env struct {
	Getenv      func(string) string
	InContainer func() bool
}

// System is the Env of the running process. Docker creates /.dockerenv.
var System = Env{
	Getenv:      os.Getenv,
	InContainer: func() bool { return fileutil.FileExists("/.dockerenv") },
}

var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

func (e Env) inCI() bool {
	for _, name := range ciVars {
		if e.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect returns hints for a Chrome that failed to start during
// PDF export. Sandbox advice only applies in CI and containers.
func ForBrowserConnect(env Env) string {
	var hints []string
	if (env.inCI() || env.InContainer()) && env.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if env.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; ") + ", or build without --pdf")
}

// ForTimeout returns a hint about increasing the PDF timeout for slow pages.
func ForTimeout() string {
	return format("for large pages, use --pdf-timeout or pdf.timeout in the config")
}

// ForConfigNotFound suggests --config, or userDir as a place for the default
// config file when it is known.
func ForConfigNotFound(userDir string) string {
	hint := "use --config /path/to/file.yaml"
	if userDir != "" {
		hint += " or create " + filepath.Join(userDir, "md2html.yaml")
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForOutputOverlap returns hints for an output directory that would wipe
// the sources.
func ForOutputOverlap() string {
	return format("point --output at a directory outside the content and static trees")
}

// ForContentDir returns hints for a missing content directory.
func ForContentDir() string {
	return format("create it, or set site.contentDir in the config or --content")
}

// ForMissingTitle returns hints for pages without a level-one heading.
func ForMissingTitle() string {
	return format(`every page needs a "# " heading outside code blocks, followed by its title`)
}

// ForMalformedInline returns hints for unbalanced inline delimiters.
func ForMalformedInline() string {
	return format("check for an unclosed **, _ or ` in the reported block")
}

// ForMissingPlaceholder returns hints for page templates lacking placeholders.
func ForMissingPlaceholder() string {
	return format("the template must contain {{ Title }} and {{ Content }}")
}

// ForEmptyDocument returns hints for empty pages under the reject policy.
func ForEmptyDocument() string {
	return format("remove the file or set convert.emptyDocument to allow")
}

func format(hint string) string {
	return "\n  hint: " + hint
}
