// Package seo extracts publishing metadata from notes and builds the
// structured data embedded in article pages.
package seo

import (
	"regexp"
	"strings"
)

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

// DOIURL returns the resolver link for the DOI, or "" when there is none.
func (c Citation) DOIURL() string {
	if c.DOI == "" {
		return ""
	}
	return "https://doi.org/" + c.DOI
}

var (
	paperLabel = regexp.MustCompile(`\*\*Paper:\*\*\s*\[([^\]]+)\]\(([^)]+)\)`)

	// Label lines are "**Label:** value" up to the end of the line.
	authorsLabel   = labelPattern("Authors")
	journalLabel   = labelPattern("Journal")
	publishedLabel = labelPattern("Published")
	doiLabel       = labelPattern("DOI")
)

func labelPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`\*\*` + label + `:\*\*[ \t]*([^\n]+)`)
}

// ExtractCitation reads the bold-label citation lines of a note.
// The first match of each label wins; missing labels leave fields empty.
func ExtractCitation(md string) Citation {
	var c Citation
	if m := paperLabel.FindStringSubmatch(md); m != nil {
		c.Title = strings.TrimSpace(m[1])
		c.URL = strings.TrimSpace(m[2])
	}
	c.Authors = firstLabel(authorsLabel, md)
	c.Journal = firstLabel(journalLabel, md)
	c.Published = firstLabel(publishedLabel, md)
	c.DOI = firstLabel(doiLabel, md)
	return c
}

func firstLabel(re *regexp.Regexp, md string) string {
	m := re.FindStringSubmatch(md)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Merge fills empty fields of c from other.
func (c Citation) Merge(other Citation) Citation {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.Title, other.Title)
	fill(&c.URL, other.URL)
	fill(&c.Authors, other.Authors)
	fill(&c.Journal, other.Journal)
	fill(&c.Published, other.Published)
	fill(&c.DOI, other.DOI)
	return c
}
