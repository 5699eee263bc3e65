package notes2html

import (
	"time"

	"go.uber.org/zap"

	"github.com/lsy641/notes2html/internal/dateutil"
)

// Conversion engines.
const (
	EngineNotes      = "notes"      // research notes dialect (default)
	EngineCommonMark = "commonmark" // CommonMark with GFM extensions
)

// defaultTimeout bounds PDF export when the context has no deadline.
const defaultTimeout = 30 * time.Second

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	engine         string
	styleInput     string // name or path, resolved in NewConverter
	resolvedStyle  string
	templateName   string
	assetPath      string
	highlight      bool
	highlightStyle string
	updatedFormat  string
	site           Site
	clock          func() time.Time
}

// WithTimeout sets the PDF export timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("notes2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithEngine selects the markdown engine: EngineNotes or EngineCommonMark.
func WithEngine(engine string) Option {
	return func(c *Converter) {
		c.cfg.engine = engine
	}
}

// WithStyle sets the page CSS by built-in name ("notes", "print") or by
// path to a .css file.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithTemplate sets the page template by name.
func WithTemplate(name string) Option {
	return func(c *Converter) {
		c.cfg.templateName = name
	}
}

// WithAssetPath loads styles and templates from dir first, falling back to
// the embedded assets. Ignored when WithAssetLoader is also given.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithAssetLoader sets a custom asset loader.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.assetLoader = loader
	}
}

// WithHighlight enables syntax highlighting of fenced code. The matching
// stylesheet is added to the page.
func WithHighlight(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.highlight = enabled
	}
}

// WithHighlightStyle sets the chroma style for highlighted code
// (default "github"). Unknown names fall back to chroma's default.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}

// WithUpdatedFormat sets the "Last updated" date format: a dateutil preset
// or token string such as "MMMM DD, YYYY".
func WithUpdatedFormat(format string) Option {
	return func(c *Converter) {
		c.cfg.updatedFormat = format
	}
}

// WithSite sets the site notes are published under.
func WithSite(site Site) Option {
	return func(c *Converter) {
		c.cfg.site = site
	}
}

// WithLogger sets the logger for operational messages. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the time source for page timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		if now != nil {
			c.cfg.clock = now
		}
	}
}

func defaultConfig() converterConfig {
	return converterConfig{
		timeout:       defaultTimeout,
		engine:        EngineNotes,
		templateName:  DefaultTemplate,
		updatedFormat: dateutil.DefaultDateFormat,
		site:          DefaultSite(),
		clock:         time.Now,
	}
}
