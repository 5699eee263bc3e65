package pipeline

import (
	"context"
	"strings"
)

// CSSInjector adds a stylesheet to a finished page.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block.
type CSSInjection struct{}

// InjectCSS inserts a <style> block before </head>, else after the opening
// <body> tag, else at the start of the document. CSS is sanitized so it
// cannot close the style element.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lower := strings.ToLower(htmlContent)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}
	if idx := strings.Index(lower, "<body"); idx != -1 {
		if end := strings.Index(htmlContent[idx:], ">"); end != -1 {
			pos := idx + end + 1
			return htmlContent[:pos] + styleBlock + htmlContent[pos:]
		}
	}
	return styleBlock + htmlContent
}

// sanitizeCSS escapes "</" so user CSS cannot end the <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// InjectBeforeBodyEnd inserts snippet before the last </body>, else before
// the last </html>, else appends it. Matching is case-insensitive.
func InjectBeforeBodyEnd(htmlContent, snippet string) string {
	lower := strings.ToLower(htmlContent)
	for _, tag := range []string{"</body>", "</html>"} {
		if idx := strings.LastIndex(lower, tag); idx != -1 {
			return htmlContent[:idx] + snippet + htmlContent[idx:]
		}
	}
	return htmlContent + snippet
}

// Compile-time interface check.
var _ CSSInjector = (*CSSInjection)(nil)
