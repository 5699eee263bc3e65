// Package pipeline implements the stages that turn a note into a page:
//   - Markdown preprocessing (line endings, blank line runs)
//   - Markdown to HTML fragment conversion, with the notes engine by
//     default and goldmark as the CommonMark alternative
//   - page shell rendering with SEO metadata and structured data
//   - CSS and script injection into finished pages
//   - relative path rewriting for PDF export
//
// PDF rendering itself lives in the root notes2html package, which drives
// headless Chrome through go-rod.
package pipeline
