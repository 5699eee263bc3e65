package notemd

import (
	"regexp"
	"strings"
)

// NestedIndent is the number of leading spaces that puts a line at the
// nested-list level.
const NestedIndent = 4

const fenceMarker = "```"

// orderedMarker matches "<digits>. " at the start of trimmed text.
var orderedMarker = regexp.MustCompile(`^\d+\. `)

// headingMarker matches "#", "##" or "###" followed by whitespace and text.
var headingMarker = regexp.MustCompile(`^(#{1,3})\s+(\S.*)$`)

// Line is one row of the input with the facts the parser dispatches on.
type Line struct {
	Raw    string // line as written, without the newline
	Text   string // Raw with surrounding whitespace removed
	Indent int    // leading spaces; a tab ends the count
}

// NewLine classifies a raw input row.
func NewLine(raw string) Line {
	indent := 0
	for indent < len(raw) && raw[indent] == ' ' {
		indent++
	}
	return Line{
		Raw:    raw,
		Text:   strings.TrimSpace(raw),
		Indent: indent,
	}
}

// SplitLines splits a document on "\n" and classifies every row.
// Carriage returns are expected to be normalized beforehand.
func SplitLines(src string) []Line {
	if src == "" {
		return nil
	}
	rows := strings.Split(src, "\n")
	lines := make([]Line, len(rows))
	for i, r := range rows {
		lines[i] = NewLine(r)
	}
	return lines
}

// Blank reports whether the line holds only whitespace.
func (l Line) Blank() bool { return l.Text == "" }

// Nested reports whether the line is indented at the nested-list width.
func (l Line) Nested() bool { return l.Indent >= NestedIndent }

// Ordered reports whether the line starts with a numbered marker.
func (l Line) Ordered() bool { return orderedMarker.MatchString(l.Text) }

// Unordered reports whether the line starts with "- ".
func (l Line) Unordered() bool { return strings.HasPrefix(l.Text, "- ") }

// Bullet reports whether the line starts with "* ".
func (l Line) Bullet() bool { return strings.HasPrefix(l.Text, "* ") }

// NestedBullet reports whether the line is a bullet at the nested width.
// Inside an ordered item both "* " and "- " bullets nest.
func (l Line) NestedBullet() bool {
	return l.Nested() && (l.Bullet() || l.Unordered())
}

// Fence reports whether the line opens or closes a fenced code block.
func (l Line) Fence() bool { return strings.HasPrefix(l.Text, fenceMarker) }

// Rule reports whether the line is a horizontal rule.
func (l Line) Rule() bool { return l.Text == "---" }

// Quote reports whether the line is a block quote.
func (l Line) Quote() bool { return strings.HasPrefix(l.Raw, "> ") }

// Heading returns the heading level and text when the line is a heading.
// Level 1 is reported as 1; mapping to output levels happens in the parser.
func (l Line) Heading() (level int, text string, ok bool) {
	m := headingMarker.FindStringSubmatch(l.Raw)
	if m == nil {
		return 0, "", false
	}
	return len(m[1]), strings.TrimSpace(m[2]), true
}

// BlockMarker reports whether the line starts a block other than an ordered
// item or plain prose. It bounds continuation lookahead.
func (l Line) BlockMarker() bool {
	if l.Unordered() || l.Rule() || l.Quote() || l.Fence() {
		return true
	}
	_, _, ok := l.Heading()
	return ok
}

// stripOrdered removes the numbered marker from trimmed text.
func stripOrdered(text string) string {
	return orderedMarker.ReplaceAllString(text, "")
}

// stripBullet removes a two-character "* " or "- " marker.
func stripBullet(text string) string {
	if strings.HasPrefix(text, "* ") || strings.HasPrefix(text, "- ") {
		return strings.TrimSpace(text[2:])
	}
	return text
}
