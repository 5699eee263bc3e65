// Package notes2html converts research notes written in a loose markdown
// dialect into publishable article pages.
//
// # Quick Start
//
// Create a converter, convert a note, and close when done:
//
//	conv, err := notes2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, notes2html.Input{
//	    Markdown: "# Reading Notes\n\nThe paper studies robotics.",
//	    Title:    "Reading Notes",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("reading-notes.html", result.HTML, 0o644)
//
// The result contains the complete page (result.HTML), the converted body
// (result.Fragment) and the metadata extracted from the note (result.Meta).
// Set Input.FragmentOnly to skip the page shell.
//
// # Conversion Pipeline
//
//  1. Preprocessing (byte order mark, line endings, blank line runs)
//  2. Markdown to HTML: the notes engine by default, or CommonMark via
//     goldmark with WithEngine(EngineCommonMark)
//  3. Metadata: citation lines, description, keywords, slug
//  4. Page shell: SEO meta tags, Open Graph, Twitter card, JSON-LD,
//     breadcrumb, citation box and footer
//  5. Optional PDF export via headless Chrome (go-rod)
//
// # The Notes Dialect
//
// Headings start with "#", "##" or "###". Lines starting with "1. " open a
// numbered list whose items may carry "* " sub-items indented by four
// spaces and unindented continuation lines. "- " lines form bullet lists.
// Lines starting with "<" are passed through as raw HTML. Consecutive
// prose lines form one paragraph.
//
// A note may name the paper it discusses:
//
//	**Paper:** [Title](https://example.org/paper)
//	**Authors:** A. Author, B. Author
//	**Journal:** Conference 2025
//	**Published:** 2025
//	**DOI:** 10.1000/xyz
//
// These lines feed the "About the Paper" box and the structured data.
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool:
//
//	pool := notes2html.NewConverterPool(notes2html.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Custom Assets
//
// Override the built-in style and page template with an asset directory:
//
//	conv, err := notes2html.NewConverter(notes2html.WithAssetPath("/path/to/assets"))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── article.html
//
// # Browser Requirements
//
// PDF export requires Chrome/Chromium. The go-rod library downloads a
// managed Chromium on first use. In containers and CI, set ROD_NO_SANDBOX=1;
// use ROD_BROWSER_BIN to point at a custom Chrome binary.
package notes2html
