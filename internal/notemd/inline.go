package notemd

import (
	"html"
	"regexp"
	"strconv"
)

// Protected spans are swapped for Private Use Area markers while the other
// rules run, then restored.
const (
	protectStart = "\uE002"
	protectEnd   = "\uE003"
)

var (
	fenceSpan  = regexp.MustCompile("(?s)```(.*?)```")
	boldSpan   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicSpan = regexp.MustCompile(`\*(.*?)\*`)
	linkSpan   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	codeSpan   = regexp.MustCompile("`([^`]+)`")

	protectedRef = regexp.MustCompile(protectStart + `(\d+)` + protectEnd)
)

// Inline applies span markup to text. Rules run once each, in order:
// triple-backtick spans, bold, italic, links, inline code. No rule sees
// the interior of a triple-backtick span, and output is never rescanned.
func Inline(text string) string {
	var protected []string
	text = fenceSpan.ReplaceAllStringFunc(text, func(m string) string {
		inner := m[3 : len(m)-3]
		protected = append(protected, "<code>"+html.EscapeString(inner)+"</code>")
		return protectStart + strconv.Itoa(len(protected)-1) + protectEnd
	})

	text = boldSpan.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicSpan.ReplaceAllString(text, "<em>$1</em>")
	text = linkSpan.ReplaceAllString(text, `<a href="$2" rel="noopener" target="_blank">$1</a>`)
	text = codeSpan.ReplaceAllString(text, "<code>$1</code>")

	if len(protected) == 0 {
		return text
	}
	return protectedRef.ReplaceAllStringFunc(text, func(m string) string {
		idx, err := strconv.Atoi(protectedRef.FindStringSubmatch(m)[1])
		if err != nil || idx >= len(protected) {
			return m
		}
		return protected[idx]
	})
}
