package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/lsy641/notes2html/internal/seo"
)

// Sentinel errors for page shell rendering.
var (
	ErrShellParse  = errors.New("page template parsing failed")
	ErrShellRender = errors.New("page template rendering failed")
)

// PageData is everything the article template can reference.
type PageData struct {
	Title       string
	Author      string
	Description string
	Keywords    []string
	Site        seo.Site
	Canonical   string
	Published   string // RFC 3339
	Modified    string // RFC 3339
	Updated     string // human-readable "Last updated" date
	Citation    seo.Citation

	CSS          template.CSS
	ArticleLD    template.JS
	BreadcrumbLD template.JS
	Content      template.HTML
}

// PageWrapper wraps a fragment into a complete page.
type PageWrapper interface {
	Render(ctx context.Context, data *PageData) (string, error)
}

// PageShell renders pages from an html/template source.
type PageShell struct {
	tmpl *template.Template
}

var shellFuncs = template.FuncMap{
	"join":     strings.Join,
	"truncate": seo.Truncate,
	"first": func(n int, items []string) []string {
		if len(items) <= n {
			return items
		}
		return items[:n]
	},
}

// NewPageShell parses a page template.
func NewPageShell(tmplContent string) (*PageShell, error) {
	tmpl, err := template.New("page").Funcs(shellFuncs).Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShellParse, err)
	}
	return &PageShell{tmpl: tmpl}, nil
}

// Render executes the template. Text fields are escaped by html/template;
// CSS, structured data and Content are inserted as trusted values.
func (s *PageShell) Render(ctx context.Context, data *PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if data == nil {
		return "", fmt.Errorf("%w: no page data", ErrShellRender)
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrShellRender, err)
	}
	return buf.String(), nil
}

// Compile-time interface check.
var _ PageWrapper = (*PageShell)(nil)
