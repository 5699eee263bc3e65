// Package config loads notes2html settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lsy641/notes2html/internal/dateutil"
	"github.com/lsy641/notes2html/internal/fileutil"
	"github.com/lsy641/notes2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxNameLength   = 100
	MaxTitleLength  = 200
	MaxURLLength    = 2048
	MaxHandleLength = 50
	MaxSuffixLength = 50
	MaxKeywordCount = 50
)

// AppDir is the directory under os.UserConfigDir searched for configs.
const AppDir = "notes2html"

// Config holds every setting the CLI and dev server read.
type Config struct {
	Site     SiteConfig   `yaml:"site"`
	Output   OutputConfig `yaml:"output"`
	Style    StyleConfig  `yaml:"style"`
	Assets   AssetsConfig `yaml:"assets"`
	Page     PageConfig   `yaml:"page"`
	PDF      PDFConfig    `yaml:"pdf"`
	Server   ServerConfig `yaml:"server"`
	Engine   string       `yaml:"engine"`   // "notes" or "commonmark"
	Keywords []string     `yaml:"keywords"` // added to every note
}

// SiteConfig identifies the website and the person publishing.
type SiteConfig struct {
	Domain      string `yaml:"domain"`
	Name        string `yaml:"name"`
	Author      string `yaml:"author"`
	JobTitle    string `yaml:"jobTitle"`
	Affiliation string `yaml:"affiliation"`
	ScholarURL  string `yaml:"scholarURL"`
	Twitter     string `yaml:"twitter"`
	Image       string `yaml:"image"`
}

// OutputConfig controls where converted pages are written.
type OutputConfig struct {
	Suffix     string `yaml:"suffix"`     // appended to the input base name
	DefaultDir string `yaml:"defaultDir"` // empty = next to the input
}

// StyleConfig controls page styling.
type StyleConfig struct {
	Name           string `yaml:"name"` // asset name or path to a .css file
	Highlight      bool   `yaml:"highlight"`
	HighlightStyle string `yaml:"highlightStyle"`
}

// AssetsConfig points at a directory overriding built-in assets.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"`
}

// PageConfig controls page shell details.
type PageConfig struct {
	Template      string `yaml:"template"`
	UpdatedFormat string `yaml:"updatedFormat"` // dateutil tokens or preset
}

// PDFConfig controls the optional PDF export.
type PDFConfig struct {
	Enabled bool   `yaml:"enabled"`
	Size    string `yaml:"size"` // "a4", "letter" or "legal"
}

// ServerConfig controls the development server.
type ServerConfig struct {
	Port  int  `yaml:"port"`
	Open  bool `yaml:"open"`
	Build bool `yaml:"build"` // rebuild .md files on change
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Domain:      "https://lsy641.github.io",
			Name:        "Siyang Liu - Academic Website",
			Author:      "Siyang Liu",
			JobTitle:    "Ph.D. Student in Computer Engineering",
			Affiliation: "University of Michigan",
			ScholarURL:  "https://scholar.google.com/citations?user=2OjUAPUAAAAJ",
			Twitter:     "@liusiyang_641",
		},
		Output: OutputConfig{Suffix: "-seo"},
		Style:  StyleConfig{Name: "notes", HighlightStyle: "github"},
		Page:   PageConfig{Template: "article", UpdatedFormat: "MMMM DD, YYYY"},
		PDF:    PDFConfig{Size: "a4"},
		Server: ServerConfig{Port: 8000, Open: true, Build: true},
		Engine: "notes",
	}
}

// Validate checks field lengths and enumerated values. LoadConfig calls it;
// callers building a Config by hand should too.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"site.domain", c.Site.Domain, MaxURLLength},
		{"site.name", c.Site.Name, MaxTitleLength},
		{"site.author", c.Site.Author, MaxNameLength},
		{"site.jobTitle", c.Site.JobTitle, MaxTitleLength},
		{"site.affiliation", c.Site.Affiliation, MaxTitleLength},
		{"site.scholarURL", c.Site.ScholarURL, MaxURLLength},
		{"site.twitter", c.Site.Twitter, MaxHandleLength},
		{"site.image", c.Site.Image, MaxURLLength},
		{"output.suffix", c.Output.Suffix, MaxSuffixLength},
		{"assets.basePath", c.Assets.BasePath, MaxURLLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if c.Site.Domain != "" && !fileutil.IsURL(c.Site.Domain) {
		return fmt.Errorf("%w: site.domain must start with http:// or https://, got %q", ErrInvalidValue, c.Site.Domain)
	}
	if strings.ContainsAny(c.Output.Suffix, "/\\") {
		return fmt.Errorf("%w: output.suffix must not contain path separators", ErrInvalidValue)
	}
	if len(c.Keywords) > MaxKeywordCount {
		return fmt.Errorf("%w: keywords (%d entries, max %d)", ErrInvalidValue, len(c.Keywords), MaxKeywordCount)
	}

	switch c.Engine {
	case "", "notes", "commonmark":
	default:
		return fmt.Errorf("%w: engine %q (must be notes or commonmark)", ErrInvalidValue, c.Engine)
	}
	switch strings.ToLower(c.PDF.Size) {
	case "", "a4", "letter", "legal":
	default:
		return fmt.Errorf("%w: pdf.size %q (must be a4, letter, or legal)", ErrInvalidValue, c.PDF.Size)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidValue, c.Server.Port)
	}
	if c.Page.UpdatedFormat != "" {
		if _, err := dateutil.Layout(c.Page.UpdatedFormat); err != nil {
			return fmt.Errorf("page.updatedFormat: %w", err)
		}
	}

	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads a config by file path or by name. A value containing a
// path separator is a path; anything else is searched with SearchPaths.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order: the
// working directory, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, 2*len(extensions))
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
