package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// appName is the directory searched under the XDG config home.
const appName = "go-md2html"

// Field and value limits.
const (
	MaxPathLength   = 4096 // PATH_MAX on Linux
	MaxEngineName   = 20
	MaxTemplateName = 64
	MaxWorkers      = 32
	MaxPDFTimeout   = 10 * time.Minute
)

// Engine and empty-document values accepted in convert settings.
const (
	EngineNative   = "native"
	EngineGoldmark = "goldmark"
	EmptyAllow     = "allow"
	EmptyReject    = "reject"
)

// Config holds all configuration for a site build.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Convert ConvertConfig `yaml:"convert"`
	PDF     PDFConfig     `yaml:"pdf"`
}

// SiteConfig defines the directories and page template of a site.
type SiteConfig struct {
	ContentDir string `yaml:"contentDir"` // Markdown sources (default: content)
	StaticDir  string `yaml:"staticDir"`  // Copied verbatim (default: static; missing dir = embedded stylesheet)
	OutputDir  string `yaml:"outputDir"`  // Wiped and regenerated (default: public)
	AssetsDir  string `yaml:"assetsDir"`  // Template and stylesheet overrides (empty = embedded only)
	Template   string `yaml:"template"`   // Template name in assetsDir, without .html (default: default)
}

// ConvertConfig defines how documents become HTML.
type ConvertConfig struct {
	Engine        string `yaml:"engine"`        // "native" or "goldmark" (default: native)
	EmptyDocument string `yaml:"emptyDocument"` // "allow" or "reject" (default: allow)
	RewriteLinks  bool   `yaml:"rewriteLinks"`  // Point relative .md links at generated pages
	Workers       int    `yaml:"workers"`       // 0 = auto (GOMAXPROCS)
}

// PDFConfig defines optional PDF export of generated pages.
type PDFConfig struct {
	Enabled bool          `yaml:"enabled"`
	Timeout time.Duration `yaml:"timeout"` // Per page (default: 30s)
}

// Validate checks field lengths and enum values.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	paths := []struct{ name, value string }{
		{"site.contentDir", c.Site.ContentDir},
		{"site.staticDir", c.Site.StaticDir},
		{"site.outputDir", c.Site.OutputDir},
		{"site.assetsDir", c.Site.AssetsDir},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.name, p.value, MaxPathLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("site.template", c.Site.Template, MaxTemplateName); err != nil {
		return err
	}

	if err := validateFieldLength("convert.engine", c.Convert.Engine, MaxEngineName); err != nil {
		return err
	}
	switch c.Convert.Engine {
	case "", EngineNative, EngineGoldmark:
	default:
		return fmt.Errorf("%w: convert.engine %q (must be %s or %s)",
			ErrInvalidValue, c.Convert.Engine, EngineNative, EngineGoldmark)
	}

	switch strings.ToLower(c.Convert.EmptyDocument) {
	case "", EmptyAllow, EmptyReject:
	default:
		return fmt.Errorf("%w: convert.emptyDocument %q (must be %s or %s)",
			ErrInvalidValue, c.Convert.EmptyDocument, EmptyAllow, EmptyReject)
	}

	if c.Convert.Workers < 0 || c.Convert.Workers > MaxWorkers {
		return fmt.Errorf("%w: convert.workers must be between 0 and %d, got %d",
			ErrInvalidValue, MaxWorkers, c.Convert.Workers)
	}

	if c.PDF.Timeout < 0 || c.PDF.Timeout > MaxPDFTimeout {
		return fmt.Errorf("%w: pdf.timeout must be between 0 and %s, got %s",
			ErrInvalidValue, MaxPDFTimeout, c.PDF.Timeout)
	}

	if c.Site.OutputDir != "" && c.Site.OutputDir == c.Site.ContentDir {
		return fmt.Errorf("%w: site.outputDir must differ from site.contentDir", ErrInvalidValue)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the conventional site layout: content/, static/
// and public/ in the working directory, native engine, embedded template.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			ContentDir: "content",
			StaticDir:  "static",
			OutputDir:  "public",
			Template:   "default",
		},
		Convert: ConvertConfig{
			Engine:        EngineNative,
			EmptyDocument: EmptyAllow,
		},
		PDF: PDFConfig{Timeout: 30 * time.Second},
	}
}

// ApplyDefaults fills zero-valued fields from DefaultConfig.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	setDefault(&c.Site.ContentDir, d.Site.ContentDir)
	setDefault(&c.Site.StaticDir, d.Site.StaticDir)
	setDefault(&c.Site.OutputDir, d.Site.OutputDir)
	setDefault(&c.Site.Template, d.Site.Template)
	setDefault(&c.Convert.Engine, d.Convert.Engine)
	setDefault(&c.Convert.EmptyDocument, d.Convert.EmptyDocument)
	if c.PDF.Timeout == 0 {
		c.PDF.Timeout = d.PDF.Timeout
	}
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file take their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, string, error) {
	if nameOrPath == "" {
		return nil, "", ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, "", err
		}
	}

	cfg := &Config{}
	if err := yamlutil.DecodeFile(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, "", fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return cfg, configPath, nil
}

// configHome is the XDG config directory. Tests override it.
var configHome = func() string { return xdg.ConfigHome }

// UserDir is the per-user config directory, $XDG_CONFIG_HOME/go-md2html.
func UserDir() string {
	return filepath.Join(configHome(), appName)
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, $XDG_CONFIG_HOME/go-md2html/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	dirs := []string{"", UserDir()}
	triedPaths := make([]string, 0, len(extensions)*len(dirs))

	for _, dir := range dirs {
		for _, ext := range extensions {
			candidate := filepath.Join(dir, name+ext)
			if fileutil.FileExists(candidate) {
				return candidate, nil
			}
			triedPaths = append(triedPaths, candidate)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
