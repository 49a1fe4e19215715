package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/logger"
)

// defaultConfigName is looked up when neither --config nor MD2HTML_CONFIG
// is given. Its absence is not an error.
const defaultConfigName = "md2html"

// Sentinel errors for setting resolution.
var (
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// loadConfig loads the named config, or the default one when name is
// empty. Returns the path of the file read, empty when built-in defaults
// are used.
func loadConfig(name string) (*config.Config, string, error) {
	if name != "" {
		return config.LoadConfig(name)
	}
	cfg, path, err := config.LoadConfig(defaultConfigName)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.DefaultConfig(), "", nil
	}
	return cfg, path, err
}

// resolveConfig loads the config file and layers environment variables
// over it. Flags are merged by the caller.
func resolveConfig(flagConfig string, env *envConfig, log *logger.Logger) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg, path, err := loadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if path != "" {
		log.ConfigLoaded(path)
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// mergeEngineFlags merges conversion and asset flags into config.
// CLI values override config values.
func mergeEngineFlags(e engineFlags, a assetFlags, cfg *config.Config) {
	setIfNotEmpty(&cfg.Convert.Engine, e.engine)
	setIfNotEmpty(&cfg.Convert.EmptyDocument, e.empty)
	if e.rewriteLinks {
		cfg.Convert.RewriteLinks = true
	}
	setIfNotEmpty(&cfg.Site.AssetsDir, a.assetsDir)
	setIfNotEmpty(&cfg.Site.Template, a.template)
}

// resolveTimeout picks the PDF timeout.
// Priority: flag > env var > config.
func resolveTimeout(flagValue string, envValue, configValue time.Duration) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q (use format like 30s, 2m, 1m30s)", ErrInvalidTimeout, flagValue)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	return configValue, nil
}

// validateWorkers checks the --workers flag value.
func validateWorkers(n int) error {
	if n < 0 || n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// converterOptions translates a validated config into converter options.
func converterOptions(cfg *config.Config, timeout time.Duration) []md2html.Option {
	opts := []md2html.Option{
		md2html.WithEngine(cfg.Convert.Engine),
		md2html.WithEmptyDocument(emptyPolicy(cfg.Convert.EmptyDocument)),
		md2html.WithTemplate(cfg.Site.Template),
		md2html.WithRewriteLinks(cfg.Convert.RewriteLinks),
	}
	if timeout > 0 {
		opts = append(opts, md2html.WithTimeout(timeout))
	}
	if cfg.Site.AssetsDir != "" {
		opts = append(opts, md2html.WithAssetPath(cfg.Site.AssetsDir))
	}
	return opts
}

// emptyPolicy maps the config value to a policy. Validate has already
// rejected anything but allow and reject.
func emptyPolicy(value string) md2html.EmptyDocumentPolicy {
	if strings.EqualFold(value, config.EmptyReject) {
		return md2html.EmptyReject
	}
	return md2html.EmptyAllow
}
