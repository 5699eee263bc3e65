// Package notemd converts hand-written research notes to HTML.
//
// The dialect is small and forgiving. Structure comes from line prefixes
// and indentation:
//
//   - "# ", "## " and "### " headings ("#" is demoted to a level 2 heading)
//   - "1. " numbered lists, whose items may carry bullets indented by four
//     spaces and unindented continuation lines
//   - "- " bulleted lists
//   - "> " quotes, "---" rules and fenced code
//
// Everything else is prose. Inline markup covers bold, italic, links and
// code spans. Nothing in the package returns an error: a line that fits no
// construct is rendered as text.
//
// Parse scans lines into a closed set of Block kinds and groups prose lines
// into paragraphs with WrapParagraphs. A Renderer then produces output;
// ToHTML uses the default HTMLRenderer.
package notemd

// ToHTML converts a notes document to an HTML fragment.
func ToHTML(src string) string {
	return (&HTMLRenderer{}).Render(Parse(src))
}
