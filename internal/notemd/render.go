package notemd

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Renderer turns a block sequence into output text.
type Renderer interface {
	Render(blocks []Block) string
}

// Compile-time interface checks.
var (
	_ Renderer = (*HTMLRenderer)(nil)
	_ Renderer = (*TextRenderer)(nil)
)

// HTMLRenderer renders blocks as an HTML fragment, one block per line.
type HTMLRenderer struct {
	// Highlight colors fenced code whose info string names a known
	// language. Colors come from CSS classes, see HighlightCSS.
	Highlight bool
}

// Render implements Renderer.
func (r *HTMLRenderer) Render(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if s := r.renderBlock(b); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

func (r *HTMLRenderer) renderBlock(b Block) string {
	switch v := b.(type) {
	case *Heading:
		return fmt.Sprintf("<h%d>%s</h%d>", v.Level, Inline(v.Text), v.Level)
	case *Paragraph:
		return "<p>" + Inline(v.Text()) + "</p>"
	case *BlockQuote:
		return "<blockquote>" + Inline(v.Text) + "</blockquote>"
	case *HorizontalRule:
		return "<hr>"
	case *CodeBlock:
		return r.renderCode(v)
	case *OrderedList:
		return renderList("ol", v.Items)
	case *UnorderedList:
		return renderList("ul", v.Items)
	case *Passthrough:
		return Inline(v.Text)
	case *proseLine:
		return "<p>" + Inline(v.Text) + "</p>"
	}
	return ""
}

func (r *HTMLRenderer) renderCode(c *CodeBlock) string {
	lang := c.Lang()
	if r.Highlight && lang != "" {
		if out, ok := highlight(c.Text, lang); ok {
			return out
		}
	}
	if lang == "" {
		return "<pre><code>" + html.EscapeString(c.Text) + "</code></pre>"
	}
	return `<pre><code class="language-` + html.EscapeString(lang) + `">` +
		html.EscapeString(c.Text) + "</code></pre>"
}

// Lang returns the first word of the info string.
func (c *CodeBlock) Lang() string {
	fields := strings.Fields(c.Info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func renderList(tag string, items []ListItem) string {
	var b strings.Builder
	b.WriteString("<" + tag + ">\n")
	for _, it := range items {
		b.WriteString("<li>")
		b.WriteString(Inline(it.Content()))
		if it.Nested != nil && len(it.Nested.Items) > 0 {
			b.WriteString("\n")
			b.WriteString(renderList("ul", it.Nested.Items))
			b.WriteString("\n")
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</" + tag + ">")
	return b.String()
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// TextRenderer renders blocks as plain text with markup removed. Blocks are
// separated by blank lines; list items are prefixed with their marker.
type TextRenderer struct{}

// Render implements Renderer.
func (TextRenderer) Render(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		switch v := b.(type) {
		case *Heading:
			parts = append(parts, Plain(v.Text))
		case *Paragraph:
			parts = append(parts, Plain(v.Text()))
		case *BlockQuote:
			parts = append(parts, Plain(v.Text))
		case *CodeBlock:
			parts = append(parts, v.Text)
		case *OrderedList:
			parts = append(parts, textList(v.Items, true))
		case *UnorderedList:
			parts = append(parts, textList(v.Items, false))
		case *Passthrough:
			if s := Plain(v.Text); s != "" {
				parts = append(parts, s)
			}
		}
	}
	return strings.Join(parts, "\n\n")
}

func textList(items []ListItem, ordered bool) string {
	lines := make([]string, 0, len(items))
	for i, it := range items {
		marker := "-"
		if ordered {
			marker = fmt.Sprintf("%d.", i+1)
		}
		lines = append(lines, marker+" "+Plain(it.Content()))
		if it.Nested != nil {
			for _, n := range it.Nested.Items {
				lines = append(lines, "    - "+Plain(n.Text))
			}
		}
	}
	return strings.Join(lines, "\n")
}

// Plain applies inline markup and strips the resulting tags.
func Plain(text string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(Inline(text), "")))
}
