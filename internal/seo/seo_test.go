package seo

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const sampleNote = `# Reading Notes

**Paper:** [Lifelong Robot Learning](https://example.org/paper)
**Authors:** A. Author, B. Author
**Journal:** Robotics and Autonomous Systems
**Published:** March 2024
**DOI:** 10.1000/xyz123

This note covers lifelong learning for robotics and some machine learning ideas.
`

func TestExtractCitation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		md   string
		want Citation
	}{
		{
			name: "all fields",
			md:   sampleNote,
			want: Citation{
				Title:     "Lifelong Robot Learning",
				URL:       "https://example.org/paper",
				Authors:   "A. Author, B. Author",
				Journal:   "Robotics and Autonomous Systems",
				Published: "March 2024",
				DOI:       "10.1000/xyz123",
			},
		},
		{
			name: "no citation",
			md:   "# Title\n\nplain text",
			want: Citation{},
		},
		{
			name: "first match wins",
			md:   "**Journal:** First\n**Journal:** Second",
			want: Citation{Journal: "First"},
		},
		{
			name: "paper without link is ignored",
			md:   "**Paper:** Just a title",
			want: Citation{},
		},
		{
			name: "label at end of input",
			md:   "**DOI:** 10.1/abc",
			want: Citation{DOI: "10.1/abc"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ExtractCitation(tt.md)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractCitation() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCitation_Merge(t *testing.T) {
	t.Parallel()

	got := Citation{Title: "Mine"}.Merge(Citation{Title: "Other", DOI: "10.1/x"})
	want := Citation{Title: "Mine", DOI: "10.1/x"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
	if !(Citation{}).IsZero() || got.IsZero() {
		t.Error("IsZero() reports wrong value")
	}
	if got.DOIURL() != "https://doi.org/10.1/x" {
		t.Errorf("DOIURL() = %q", got.DOIURL())
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("é", 250)

	tests := []struct {
		name string
		md   string
		want string
	}{
		{
			name: "skips headings and labels",
			md:   sampleNote,
			want: "This note covers lifelong learning for robotics and some machine learning ideas.",
		},
		{
			name: "skips short lines",
			md:   "short line\n\n   A line that is clearly longer than twenty.   ",
			want: "A line that is clearly longer than twenty.",
		},
		{
			name: "exactly twenty is too short",
			md:   strings.Repeat("x", 20),
			want: "",
		},
		{
			name: "long line truncated by runes",
			md:   long,
			want: strings.Repeat("é", 200) + "...",
		},
		{
			name: "empty",
			md:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Describe(tt.md); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		md    string
		extra []string
	}{
		{name: "base only", md: "nothing special here"},
		{name: "ai as word", md: "Embodied AI agents", extra: []string{"artificial intelligence"}},
		{name: "ai inside word", md: "a fair comparison"},
		{name: "nlp", md: "NLP benchmarks", extra: []string{"natural language processing"}},
		{
			name:  "several topics",
			md:    "Machine Learning for Robotics and Computer Vision",
			extra: []string{"machine learning", "robotics", "computer vision"},
		},
		{
			name:  "natural language once",
			md:    "natural language and nlp",
			extra: []string{"natural language processing"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := append(append([]string(nil), BaseKeywords...), tt.extra...)
			if diff := cmp.Diff(want, Keywords(tt.md)); diff != "" {
				t.Errorf("Keywords() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"Lifelong Learning", "lifelong-learning"},
		{"RT-2: Vision (Language), Action.", "rt-2-vision-language-action"},
		{"  padded  ", "padded"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slug(tt.title); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestSite_URLs(t *testing.T) {
	t.Parallel()

	s := Site{Domain: "https://lsy641.github.io/"}

	checks := map[string]string{
		s.Home():              "https://lsy641.github.io/",
		s.IndexURL():          "https://lsy641.github.io/research-notes",
		s.CanonicalURL("abc"): "https://lsy641.github.io/notes/abc.html",
		s.ImageURL():          "https://lsy641.github.io/images/profile.jpg",
	}
	for got, want := range checks {
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestArticleJSONLD(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	info := ArticleInfo{
		Site: Site{
			Domain:      "https://example.com",
			Name:        "Example",
			Author:      "Jane Doe",
			Affiliation: "Some University",
			ScholarURL:  "https://scholar.example.com/jane",
		},
		Title:       `Quotes "and" <tags>`,
		Description: "desc",
		Keywords:    []string{"a", "b"},
		Canonical:   "https://example.com/notes/x.html",
		Published:   ts,
		Modified:    ts,
		WordCount:   42,
		Citation:    Citation{Title: "Paper", URL: "https://p.example"},
	}

	out, err := ArticleJSONLD(info)
	if err != nil {
		t.Fatalf("ArticleJSONLD() error: %v", err)
	}
	if strings.Contains(out, "<tags>") {
		t.Error("angle brackets must be escaped inside script content")
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got["headline"] != info.Title {
		t.Errorf("headline = %v", got["headline"])
	}
	if got["datePublished"] != "2025-03-01T12:00:00Z" {
		t.Errorf("datePublished = %v", got["datePublished"])
	}
	if got["keywords"] != "a, b" {
		t.Errorf("keywords = %v", got["keywords"])
	}
	if got["wordCount"] != float64(42) {
		t.Errorf("wordCount = %v", got["wordCount"])
	}
	mentions, ok := got["mentions"].([]any)
	if !ok || len(mentions) != 1 {
		t.Fatalf("mentions = %v", got["mentions"])
	}

	info.Citation = Citation{}
	out, err = ArticleJSONLD(info)
	if err != nil {
		t.Fatalf("ArticleJSONLD() error: %v", err)
	}
	if strings.Contains(out, "mentions") {
		t.Error("mentions present without a cited paper")
	}
}

func TestBreadcrumbJSONLD(t *testing.T) {
	t.Parallel()

	out, err := BreadcrumbJSONLD(Site{Domain: "https://example.com"})
	if err != nil {
		t.Fatalf("BreadcrumbJSONLD() error: %v", err)
	}

	var got breadcrumbList
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(got.Items) != 3 || got.Items[2].Item != "https://example.com/notes/" {
		t.Errorf("unexpected items: %+v", got.Items)
	}
}
