package notes2html

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lsy641/notes2html/internal/assets"
	"github.com/lsy641/notes2html/internal/dateutil"
	"github.com/lsy641/notes2html/internal/fileutil"
	"github.com/lsy641/notes2html/internal/notemd"
	"github.com/lsy641/notes2html/internal/pipeline"
	"github.com/lsy641/notes2html/internal/seo"
)

// Converter orchestrates the notes-to-article pipeline.
// Create with NewConverter, use Convert for conversion, and Close when done.
// A Converter is safe for sequential use; use ConverterPool for parallel work.
type Converter struct {
	cfg           converterConfig
	assetLoader   assets.AssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
	shell         pipeline.PageWrapper
	pdfConverter  pdfConverter
	logger        *zap.Logger
}

// NewConverter creates a Converter. Options are applied in order.
// Returns an error if an option value is invalid or an asset cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          defaultConfig(),
		preprocessor: &pipeline.NotesPreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
		logger:       zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.resolveAssetLoader(); err != nil {
		return nil, err
	}

	if c.htmlConverter == nil {
		conv, err := pipeline.NewHTMLConverter(c.cfg.engine, c.cfg.highlight)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, c.cfg.engine)
		}
		c.htmlConverter = conv
	}

	if _, err := dateutil.Layout(c.cfg.updatedFormat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if c.shell == nil {
		tmpl, err := c.assetLoader.LoadTemplate(c.cfg.templateName)
		if err != nil {
			return nil, fmt.Errorf("loading template %q: %w", c.cfg.templateName, convertAssetError(err, ErrTemplateNotFound))
		}
		shell, err := pipeline.NewPageShell(tmpl)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
		}
		c.shell = shell
	}

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout, c.logger)
	}

	return c, nil
}

// resolveAssetLoader picks the loader: WithAssetLoader, then WithAssetPath,
// then the embedded assets.
func (c *Converter) resolveAssetLoader() error {
	if c.assetLoader != nil {
		return nil
	}
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
		return nil
	}
	c.assetLoader = assets.NewEmbeddedLoader()
	return nil
}

// resolveStyle loads the page CSS and, when highlighting is on, appends the
// code highlighting stylesheet.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	var css string
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: loading style file %q: %v", ErrStyleNotFound, input, err)
		}
		css = string(content)
	} else {
		content, err := c.assetLoader.LoadStyle(input)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", input, convertAssetError(err, ErrStyleNotFound))
		}
		css = content
	}

	if c.cfg.highlight {
		hl, err := notemd.HighlightCSS(c.cfg.highlightStyle)
		if err != nil {
			return err
		}
		css += "\n" + hl
	}

	c.cfg.resolvedStyle = css
	return nil
}

// Convert runs the pipeline and returns the fragment, the article page and,
// when input.PDF is set, the PDF. The context is used for cancellation.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	begin := time.Now()
	now := c.cfg.clock()

	md := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fragment, err := c.htmlConverter.ToHTML(ctx, md)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	site := c.siteFor(input)
	meta := buildMeta(md, input, site)
	meta.Published = now

	res := &ConvertResult{Fragment: []byte(fragment), Meta: meta}
	if input.FragmentOnly {
		c.logConverted(meta, time.Since(begin))
		return res, nil
	}

	page, err := c.renderPage(ctx, fragment, meta, site)
	if err != nil {
		return nil, err
	}
	page = c.cssInjector.InjectCSS(ctx, page, input.CSS)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.HTML = []byte(page)

	if input.PDF != nil {
		pdfHTML := page
		if input.SourceDir != "" {
			pdfHTML, err = pipeline.RewriteRelativePaths(pdfHTML, input.SourceDir)
			if err != nil {
				return nil, fmt.Errorf("rewriting relative paths: %w", err)
			}
		}
		pdfBytes, err := c.pdfConverter.ToPDF(ctx, pdfHTML, &pdfOptions{
			Size:   strings.ToLower(input.PDF.Size),
			Author: site.Author,
		})
		if err != nil {
			return nil, fmt.Errorf("converting to PDF: %w", err)
		}
		res.PDF = pdfBytes
	}

	c.logConverted(meta, time.Since(begin))
	return res, nil
}

// renderPage wraps the fragment in the article template.
func (c *Converter) renderPage(ctx context.Context, fragment string, meta Meta, site Site) (string, error) {
	seoSite := site.toSEO()
	citation := seo.Citation(meta.Citation)

	articleLD, err := seo.ArticleJSONLD(seo.ArticleInfo{
		Site:        seoSite,
		Title:       meta.Title,
		Description: meta.Description,
		Keywords:    meta.Keywords,
		Canonical:   meta.Canonical,
		Published:   meta.Published,
		Modified:    meta.Published,
		WordCount:   meta.WordCount,
		Citation:    citation,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	breadcrumbLD, err := seo.BreadcrumbJSONLD(seoSite)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}

	updated, err := dateutil.Format(meta.Published, c.cfg.updatedFormat)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	stamp := meta.Published.Format(time.RFC3339)

	// #nosec G203 -- assets, encoding/json output and the converted note are trusted
	page, err := c.shell.Render(ctx, &pipeline.PageData{
		Title:        meta.Title,
		Author:       site.Author,
		Description:  meta.Description,
		Keywords:     meta.Keywords,
		Site:         seoSite,
		Canonical:    meta.Canonical,
		Published:    stamp,
		Modified:     stamp,
		Updated:      updated,
		Citation:     citation,
		CSS:          template.CSS(c.cfg.resolvedStyle),
		ArticleLD:    template.JS(articleLD),
		BreadcrumbLD: template.JS(breadcrumbLD),
		Content:      template.HTML(fragment),
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return page, nil
}

// siteFor returns the configured site with the per-input overrides applied.
func (c *Converter) siteFor(input Input) Site {
	site := c.cfg.site
	if input.Author != "" {
		site.Author = input.Author
	}
	if input.Domain != "" {
		site.Domain = strings.TrimRight(input.Domain, "/")
	}
	return site
}

// buildMeta extracts the page metadata from the preprocessed note. Values
// given in input take precedence over extracted ones.
func buildMeta(md string, input Input, site Site) Meta {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = DefaultTitle
	}

	description := input.Description
	if description == "" {
		description = seo.Describe(md)
	}

	slug := seo.Slug(title)
	citation := seo.ExtractCitation(md).Merge(input.Citation.toSEO())

	return Meta{
		Title:       title,
		Slug:        slug,
		Canonical:   site.toSEO().CanonicalURL(slug),
		Description: description,
		Keywords:    mergeKeywords(seo.Keywords(md), input.Keywords),
		WordCount:   len(strings.Fields(notemd.TextRenderer{}.Render(notemd.Parse(md)))),
		Citation:    fromSEOCitation(citation),
	}
}

// mergeKeywords appends extra to base, skipping blanks and duplicates.
func mergeKeywords(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, k := range append(base, extra...) {
		k = strings.TrimSpace(k)
		key := strings.ToLower(k)
		if k == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, k)
	}
	return out
}

func (c *Converter) logConverted(meta Meta, elapsed time.Duration) {
	c.logger.Debug("note converted",
		zap.String("title", meta.Title),
		zap.String("slug", meta.Slug),
		zap.Int("words", meta.WordCount),
		zap.Int("keywords", len(meta.Keywords)),
		zap.Bool("citation", !meta.Citation.IsZero()),
		zap.Duration("elapsed", elapsed),
	)
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// validateInput checks that required fields are present and valid.
func validateInput(input Input) error {
	if strings.TrimSpace(input.Markdown) == "" {
		return ErrEmptyMarkdown
	}
	return input.PDF.Validate()
}
