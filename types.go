package notes2html

import (
	"fmt"
	"strings"
	"time"

	"github.com/lsy641/notes2html/internal/seo"
)

// Page size constants.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// DefaultTitle is used when Input.Title is empty.
const DefaultTitle = "Document"

// Input contains conversion parameters.
type Input struct {
	Markdown    string    // Markdown content (required)
	Title       string    // Page title (default: DefaultTitle)
	Author      string    // Overrides Site.Author
	Domain      string    // Overrides Site.Domain
	Description string    // Page description (default: first prose line)
	Keywords    []string  // Added to the detected keywords
	Citation    *Citation // Fills citation fields the note does not state
	CSS         string    // Extra CSS appended after the page style
	SourceDir   string    // Resolves relative image and link paths for PDF export

	// FragmentOnly skips the page shell and PDF export; only
	// ConvertResult.Fragment and Meta are filled.
	FragmentOnly bool

	PDF *PDFSettings // PDF export (optional, nil = no PDF)
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	Fragment []byte // converted note body
	HTML     []byte // complete article page
	PDF      []byte // nil unless Input.PDF was set
	Meta     Meta
}

// Meta describes a converted note.
type Meta struct {
	Title       string
	Slug        string
	Canonical   string
	Description string
	Keywords    []string
	WordCount   int
	Citation    Citation
	Published   time.Time
}

// Citation describes the paper a note is about. Every field is optional.
type Citation struct {
	Title     string
	URL       string
	Authors   string
	Journal   string
	Published string
	DOI       string
}

// IsZero reports whether no citation field is set.
func (c Citation) IsZero() bool {
	return c == Citation{}
}

// Site identifies the website and the person publishing notes.
type Site struct {
	Domain      string // base URL, e.g. "https://lsy641.github.io"
	Name        string // publisher name
	Author      string
	JobTitle    string
	Affiliation string
	ScholarURL  string
	Twitter     string // handle including "@"
	Image       string // share image URL (default: {Domain}/images/profile.jpg)
}

// DefaultSite returns the site notes are published under when no
// WithSite option is given.
func DefaultSite() Site {
	return Site{
		Domain:      "https://lsy641.github.io",
		Name:        "Siyang Liu - Academic Website",
		Author:      "Siyang Liu",
		JobTitle:    "Ph.D. Student in Computer Engineering",
		Affiliation: "University of Michigan",
		ScholarURL:  "https://scholar.google.com/citations?user=2OjUAPUAAAAJ",
		Twitter:     "@liusiyang_641",
	}
}

// PDFSettings configures PDF export.
type PDFSettings struct {
	Size string // "a4" (default), "letter", "legal"
}

// Validate checks that PDF settings are valid.
// Returns nil if p is nil (nil means no PDF).
func (p *PDFSettings) Validate() error {
	if p == nil {
		return nil
	}
	switch strings.ToLower(p.Size) {
	case "", PageSizeA4, PageSizeLetter, PageSizeLegal:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be a4, letter, or legal)", ErrInvalidPageSize, p.Size)
	}
}

func (c *Citation) toSEO() seo.Citation {
	if c == nil {
		return seo.Citation{}
	}
	return seo.Citation(*c)
}

func fromSEOCitation(c seo.Citation) Citation {
	return Citation(c)
}

func (s Site) toSEO() seo.Site {
	return seo.Site(s)
}
