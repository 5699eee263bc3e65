package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/lsy641/notes2html"
	"github.com/lsy641/notes2html/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrReadCSS        = errors.New("failed to read CSS file")
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrWriteOutput    = errors.New("failed to write output file")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrBatchFailed    = errors.New("some notes failed to convert")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: pages are published
)

// maxPositionalArgs is the length of <input> [output] [title] [author] [domain].
const maxPositionalArgs = 5

// inputNotFoundError reports a missing input path in the tool's wording.
type inputNotFoundError struct {
	path string
}

func (e *inputNotFoundError) Error() string {
	return fmt.Sprintf("Input file '%s' not found.", e.path)
}

func (e *inputNotFoundError) Unwrap() error {
	return os.ErrNotExist
}

// positionalArgs holds the positional contract of convert.
type positionalArgs struct {
	input  string
	output string
	title  string
	author string
	domain string
}

// parsePositional maps positional arguments onto their fields.
func parsePositional(args []string) (positionalArgs, error) {
	var p positionalArgs
	if len(args) == 0 {
		return p, ErrNoInput
	}
	if len(args) > maxPositionalArgs {
		return p, fmt.Errorf("%w: too many arguments (%d, max %d)", ErrUsage, len(args), maxPositionalArgs)
	}
	fields := []*string{&p.input, &p.output, &p.title, &p.author, &p.domain}
	for i, arg := range args {
		*fields[i] = arg
	}
	return p, nil
}

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	cfg         *config.Config
	css         string
	title       string // explicit title, single-file runs only
	description string
	fragment    bool
	pdf         bool
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	pos, err := parsePositional(args)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, pos, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeoutWithEnv(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	info, err := os.Stat(pos.input)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &inputNotFoundError{path: pos.input}
		}
		return err
	}

	output := firstNonEmpty(flags.output, pos.output)
	files, err := discoverFiles(pos.input, output, cfg.Output)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, pos.input)
	}

	css, err := readCSSFile(flags.assets.css)
	if err != nil {
		return err
	}

	params := &conversionParams{
		cfg:         cfg,
		css:         css,
		description: flags.page.description,
		fragment:    flags.outputMode.fragment,
		pdf:         flags.outputMode.pdf || cfg.PDF.Enabled,
	}
	if !info.IsDir() {
		params.title = firstNonEmpty(flags.page.title, pos.title)
	}

	logger := env.logger()
	poolSize := notes2html.ResolvePoolSize(flags.workers)
	logger.Debug("starting conversion", zap.Int("files", len(files)), zap.Int("workers", poolSize))

	pool := notes2html.NewConverterPool(poolSize, converterOptions(cfg, timeout, env)...)
	defer func() { _ = pool.Close() }()

	results := convertBatch(ctx, &poolAdapter{pool: pool}, files, params)
	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)

	if len(results) == 1 {
		return results[0].Err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBatchFailed, failed, len(results))
	}
	return nil
}

// loadConfig loads the named config, or the defaults when no name is given
// by flag or environment.
func loadConfig(flagName string, env *envConfig) (*config.Config, error) {
	name := firstNonEmpty(flagName, env.ConfigPath)
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies flags and positional values over config values.
// A flag wins over the positional argument for the same field.
func mergeFlags(flags *convertFlags, pos positionalArgs, cfg *config.Config) {
	if v := firstNonEmpty(flags.page.author, pos.author); v != "" {
		cfg.Site.Author = v
	}
	if v := firstNonEmpty(flags.page.domain, pos.domain); v != "" {
		cfg.Site.Domain = v
	}
	if flags.assets.engine != "" {
		cfg.Engine = flags.assets.engine
	}
	if flags.assets.style != "" {
		cfg.Style.Name = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.assets.highlight {
		cfg.Style.Highlight = true
	}
}

// converterOptions translates the merged config into converter options.
func converterOptions(cfg *config.Config, timeout time.Duration, env *Environment) []notes2html.Option {
	opts := []notes2html.Option{
		notes2html.WithEngine(cfg.Engine),
		notes2html.WithStyle(cfg.Style.Name),
		notes2html.WithHighlight(cfg.Style.Highlight),
		notes2html.WithHighlightStyle(cfg.Style.HighlightStyle),
		notes2html.WithTemplate(cfg.Page.Template),
		notes2html.WithUpdatedFormat(cfg.Page.UpdatedFormat),
		notes2html.WithSite(siteFromConfig(cfg.Site)),
		notes2html.WithLogger(env.Logger),
		notes2html.WithClock(env.Now),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, notes2html.WithAssetPath(cfg.Assets.BasePath))
	}
	if timeout > 0 {
		opts = append(opts, notes2html.WithTimeout(timeout))
	}
	return opts
}

func siteFromConfig(s config.SiteConfig) notes2html.Site {
	return notes2html.Site{
		Domain:      s.Domain,
		Name:        s.Name,
		Author:      s.Author,
		JobTitle:    s.JobTitle,
		Affiliation: s.Affiliation,
		ScholarURL:  s.ScholarURL,
		Twitter:     s.Twitter,
		Image:       s.Image,
	}
}

// resolveTimeoutWithEnv picks the flag timeout, then the environment one.
// Zero means the converter default.
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envValue, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (use e.g. 30s, 2m)", ErrInvalidTimeout, flagValue)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// readCSSFile reads the extra CSS file, if any.
func readCSSFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(content), nil
}

// pdfPath returns the PDF path matching an HTML output path.
func pdfPath(htmlPath string) string {
	return htmlPath[:len(htmlPath)-len(filepath.Ext(htmlPath))] + ".pdf"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
