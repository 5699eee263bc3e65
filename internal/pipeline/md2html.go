package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/lsy641/notes2html/internal/notemd"
)

// Conversion engines.
const (
	EngineNotes      = "notes"
	EngineCommonMark = "commonmark"
)

// Sentinel errors for HTML conversion.
var (
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrUnknownEngine  = errors.New("unknown conversion engine")
)

// HTMLConverter converts markdown to an HTML fragment.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// NewHTMLConverter returns the converter for the named engine.
// An empty name selects EngineNotes.
func NewHTMLConverter(engine string, highlight bool) (HTMLConverter, error) {
	switch engine {
	case "", EngineNotes:
		return &NotesConverter{Highlight: highlight}, nil
	case EngineCommonMark:
		return NewGoldmarkConverter(highlight), nil
	}
	return nil, fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownEngine, engine, EngineNotes, EngineCommonMark)
}

// NotesConverter converts with the notes dialect of package notemd.
type NotesConverter struct {
	Highlight bool
}

// ToHTML implements HTMLConverter. The notes engine cannot fail; only
// context cancellation produces an error.
func (c *NotesConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r := &notemd.HTMLRenderer{Highlight: c.Highlight}
	return r.Render(notemd.Parse(content)), nil
}

// GoldmarkConverter converts CommonMark with GFM extensions.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter. Raw HTML is rendered
// as-is, matching the notes engine's passthrough lines.
func NewGoldmarkConverter(highlight bool) *GoldmarkConverter {
	exts := []goldmark.Extender{extension.GFM}
	if highlight {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(notemd.DefaultHighlightStyle),
			highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML implements HTMLConverter. Goldmark has no context support, so the
// conversion runs in a goroutine and the caller stops waiting on cancel.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: string(bytes.TrimRight(buf.Bytes(), "\n"))}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// Compile-time interface checks.
var (
	_ HTMLConverter = (*NotesConverter)(nil)
	_ HTMLConverter = (*GoldmarkConverter)(nil)
)
