package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/logger"
)

// stdinArg selects standard input as the convert source.
const stdinArg = "-"

// ErrNoInput is returned when convert is called without a source file.
var ErrNoInput = errors.New("no input specified")

// runConvert converts a single file and writes the result to stdout or -o.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	switch {
	case len(positional) == 0:
		return ErrNoInput
	case len(positional) > 1:
		return fmt.Errorf("%w: convert takes one input, got %d", ErrUsage, len(positional))
	}
	src := positional[0]

	log := logger.NewWithLevel(env.Stderr, logger.LevelFor(flags.common.verbose, flags.common.quiet))
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(log)

	cfg, err := resolveConfig(flags.common.config, envCfg, log)
	if err != nil {
		return err
	}
	mergeEngineFlags(flags.engine, flags.assets, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := converterOptions(cfg, 0)
	if flags.style != "" {
		opts = append(opts, md2html.WithStyle(flags.style))
	}
	conv, err := md2html.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	markdown, err := readInput(src, env.Stdin)
	if err != nil {
		return err
	}

	result, err := conv.Convert(ctx, md2html.Input{
		Markdown:    markdown,
		FullPage:    flags.page || flags.inlineStyle,
		InlineStyle: flags.inlineStyle,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}

	out := result.Fragment
	if flags.page || flags.inlineStyle {
		out = result.Page
	}

	if flags.output == "" {
		_, err := fmt.Fprintln(env.Stdout, out)
		return err
	}
	if err := fileutil.WriteFile(flags.output, []byte(out)); err != nil {
		return fmt.Errorf("%w: %v", md2html.ErrWritePage, err)
	}
	log.PageGenerated(src, flags.output, result.Title)
	return nil
}

// readInput reads a markdown file, or stdin for "-".
func readInput(src string, stdin io.Reader) (string, error) {
	if src == stdinArg {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %v", md2html.ErrReadMarkdown, err)
		}
		return string(data), nil
	}

	if !fileutil.IsMarkdown(src) {
		return "", fmt.Errorf("%w: %s", md2html.ErrNotMarkdown, src)
	}
	data, err := os.ReadFile(src) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", md2html.ErrReadMarkdown, err)
	}
	return string(data), nil
}
