package seo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	schemaContext = "https://schema.org"
	sectionName   = "Research Notes"
)

type thing struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type person struct {
	Type     string   `json:"@type"`
	Name     string   `json:"name"`
	URL      string   `json:"url,omitempty"`
	JobTitle string   `json:"jobTitle,omitempty"`
	WorksFor *thing   `json:"worksFor,omitempty"`
	SameAs   []string `json:"sameAs,omitempty"`
}

type webPage struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

type article struct {
	Context          string  `json:"@context"`
	Type             string  `json:"@type"`
	Headline         string  `json:"headline"`
	Description      string  `json:"description,omitempty"`
	Image            string  `json:"image,omitempty"`
	Author           person  `json:"author"`
	Publisher        thing   `json:"publisher"`
	DatePublished    string  `json:"datePublished"`
	DateModified     string  `json:"dateModified"`
	MainEntityOfPage webPage `json:"mainEntityOfPage"`
	About            []thing `json:"about"`
	Keywords         string  `json:"keywords,omitempty"`
	ArticleSection   string  `json:"articleSection"`
	InLanguage       string  `json:"inLanguage"`
	WordCount        int     `json:"wordCount,omitempty"`
	IsPartOf         thing   `json:"isPartOf"`
	Mentions         []thing `json:"mentions,omitempty"`
}

type listItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

type breadcrumbList struct {
	Context string     `json:"@context"`
	Type    string     `json:"@type"`
	Items   []listItem `json:"itemListElement"`
}

// ArticleInfo is the data described by the Article structured data.
type ArticleInfo struct {
	Site        Site
	Title       string
	Description string
	Keywords    []string
	Canonical   string
	Published   time.Time
	Modified    time.Time
	WordCount   int
	Citation    Citation
}

// ArticleJSONLD returns the schema.org Article object for a note.
// A ScholarlyArticle mention is added when the citation names a paper.
func ArticleJSONLD(info ArticleInfo) (string, error) {
	site := info.Site
	a := article{
		Context:     schemaContext,
		Type:        "Article",
		Headline:    info.Title,
		Description: info.Description,
		Image:       site.ImageURL(),
		Author: person{
			Type:     "Person",
			Name:     site.Author,
			URL:      site.Home(),
			JobTitle: site.JobTitle,
		},
		Publisher:        thing{Type: "Organization", Name: site.Name, URL: site.Home()},
		DatePublished:    info.Published.Format(time.RFC3339),
		DateModified:     info.Modified.Format(time.RFC3339),
		MainEntityOfPage: webPage{Type: "WebPage", ID: info.Canonical},
		About: []thing{
			{Type: "Thing", Name: sectionName},
			{Type: "Thing", Name: "Academic Analysis"},
			{Type: "Thing", Name: "Literature Review"},
		},
		Keywords:       strings.Join(info.Keywords, ", "),
		ArticleSection: sectionName,
		InLanguage:     "en",
		WordCount:      info.WordCount,
		IsPartOf:       thing{Type: "CollectionPage", Name: sectionName, URL: site.IndexURL()},
	}
	if site.Affiliation != "" {
		a.Author.WorksFor = &thing{Type: "Organization", Name: site.Affiliation}
	}
	if site.ScholarURL != "" {
		a.Author.SameAs = []string{site.ScholarURL}
	}
	if c := info.Citation; c.Title != "" && c.URL != "" {
		a.Mentions = []thing{{Type: "ScholarlyArticle", Name: c.Title, URL: c.URL}}
	}
	return marshal(a)
}

// BreadcrumbJSONLD returns the Home > Research Notes > Reading Notes trail.
func BreadcrumbJSONLD(site Site) (string, error) {
	return marshal(breadcrumbList{
		Context: schemaContext,
		Type:    "BreadcrumbList",
		Items: []listItem{
			{Type: "ListItem", Position: 1, Name: "Home", Item: site.Home()},
			{Type: "ListItem", Position: 2, Name: sectionName, Item: site.IndexURL()},
			{Type: "ListItem", Position: 3, Name: "Reading Notes", Item: site.NotesURL()},
		},
	})
}

func marshal(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding structured data: %w", err)
	}
	return string(b), nil
}
