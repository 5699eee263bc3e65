package pipeline

import (
	"context"
	"regexp"
	"strings"
)

var crlfOrCR = regexp.MustCompile(`\r\n?`)

const byteOrderMark = "\uFEFF"

// MarkdownPreprocessor prepares raw markdown for conversion.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// NotesPreprocessor normalizes notes before block scanning. It never
// changes how lines are classified, and blank lines are kept so fenced code
// reaches the parser verbatim.
type NotesPreprocessor struct{}

// PreprocessMarkdown strips a leading byte order mark and converts \r\n and
// \r to \n.
func (p *NotesPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	return normalizeLineEndings(content)
}

func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// Compile-time interface check.
var _ MarkdownPreprocessor = (*NotesPreprocessor)(nil)
