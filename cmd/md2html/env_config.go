package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/logger"
)

// envPrefix is shared by every recognized variable.
const envPrefix = "MD2HTML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MD2HTML_CONFIG: config file name or path
	ContentDir string        // MD2HTML_CONTENT_DIR
	StaticDir  string        // MD2HTML_STATIC_DIR
	OutputDir  string        // MD2HTML_OUTPUT_DIR
	AssetsDir  string        // MD2HTML_ASSETS_DIR
	Engine     string        // MD2HTML_ENGINE: native, goldmark
	Workers    int           // MD2HTML_WORKERS: parallel workers
	PDFTimeout time.Duration // MD2HTML_PDF_TIMEOUT: per page
}

// knownEnvVars lists valid MD2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2HTML_CONFIG":      true,
	"MD2HTML_CONTENT_DIR": true,
	"MD2HTML_STATIC_DIR":  true,
	"MD2HTML_OUTPUT_DIR":  true,
	"MD2HTML_ASSETS_DIR":  true,
	"MD2HTML_ENGINE":      true,
	"MD2HTML_WORKERS":     true,
	"MD2HTML_PDF_TIMEOUT": true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2HTML_CONFIG"),
		ContentDir: os.Getenv("MD2HTML_CONTENT_DIR"),
		StaticDir:  os.Getenv("MD2HTML_STATIC_DIR"),
		OutputDir:  os.Getenv("MD2HTML_OUTPUT_DIR"),
		AssetsDir:  os.Getenv("MD2HTML_ASSETS_DIR"),
		Engine:     os.Getenv("MD2HTML_ENGINE"),
	}

	if timeout := os.Getenv("MD2HTML_PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.PDFTimeout = d
		}
	}

	if workers := os.Getenv("MD2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized MD2HTML_* variable.
func warnUnknownEnvVars(log *logger.Logger) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			log.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig overwrites config values with the variables that are set.
// Order of precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards). The PDF timeout is resolved
// separately by resolveTimeout.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setIfNotEmpty(&cfg.Site.ContentDir, env.ContentDir)
	setIfNotEmpty(&cfg.Site.StaticDir, env.StaticDir)
	setIfNotEmpty(&cfg.Site.OutputDir, env.OutputDir)
	setIfNotEmpty(&cfg.Site.AssetsDir, env.AssetsDir)
	setIfNotEmpty(&cfg.Convert.Engine, env.Engine)
	if env.Workers > 0 {
		cfg.Convert.Workers = env.Workers
	}
}

func setIfNotEmpty(field *string, value string) {
	if value != "" {
		*field = value
	}
}
