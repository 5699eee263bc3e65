package seo

import (
	"regexp"
	"strings"
)

const (
	// MinDescriptionLength is the trimmed length a line must exceed to be
	// used as the description.
	MinDescriptionLength = 20

	// MaxDescriptionLength is the rune count kept before "..." is appended.
	MaxDescriptionLength = 200
)

// BaseKeywords are present on every note.
var BaseKeywords = []string{
	"research notes",
	"academic analysis",
	"literature review",
	"academic research",
}

// topicRule adds a keyword when any of its patterns matches the lowercased note.
type topicRule struct {
	keyword  string
	patterns []*regexp.Regexp
}

var topicRules = []topicRule{
	{"artificial intelligence", []*regexp.Regexp{regexp.MustCompile(`\bai\b`)}},
	{"machine learning", []*regexp.Regexp{regexp.MustCompile(`machine learning`)}},
	{"robotics", []*regexp.Regexp{regexp.MustCompile(`robotics`)}},
	{"natural language processing", []*regexp.Regexp{
		regexp.MustCompile(`\bnlp\b`),
		regexp.MustCompile(`natural language`),
	}},
	{"computer vision", []*regexp.Regexp{regexp.MustCompile(`computer vision`)}},
}

// Describe returns the first prose line of a note suitable as a page
// description: not blank, not a heading, not a bold label, and longer than
// MinDescriptionLength once trimmed. Long lines are cut to
// MaxDescriptionLength runes and suffixed with "...".
func Describe(md string) string {
	for _, line := range strings.Split(md, "\n") {
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "**") {
			continue
		}
		text := strings.TrimSpace(line)
		if len([]rune(text)) <= MinDescriptionLength {
			continue
		}
		return Truncate(text, MaxDescriptionLength)
	}
	return ""
}

// Truncate cuts s to n runes and appends "..." when it was longer.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// Keywords returns BaseKeywords followed by the topics detected in the note.
func Keywords(md string) []string {
	lower := strings.ToLower(md)
	keywords := append([]string(nil), BaseKeywords...)
	for _, rule := range topicRules {
		for _, re := range rule.patterns {
			if re.MatchString(lower) {
				keywords = append(keywords, rule.keyword)
				break
			}
		}
	}
	return keywords
}

var slugDrop = strings.NewReplacer(":", "", "(", "", ")", "", ",", "", ".", "")

// Slug derives the page file name from a title. The title is lowercased,
// spaces become "-" and the characters ":(),." are removed.
func Slug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.ReplaceAll(s, " ", "-")
	return slugDrop.Replace(s)
}
