package seo

import "strings"

// Site identifies the website and person a note is published under.
type Site struct {
	Domain      string // base URL without trailing slash
	Name        string // publisher name, e.g. "Siyang Liu - Academic Website"
	Author      string
	JobTitle    string
	Affiliation string
	ScholarURL  string
	Twitter     string // handle including "@"
	Image       string // absolute URL of the share image
}

// Home returns the site root URL.
func (s Site) Home() string {
	return strings.TrimRight(s.Domain, "/") + "/"
}

// IndexURL returns the research notes index page.
func (s Site) IndexURL() string {
	return strings.TrimRight(s.Domain, "/") + "/research-notes"
}

// NotesURL returns the directory holding published notes.
func (s Site) NotesURL() string {
	return strings.TrimRight(s.Domain, "/") + "/notes/"
}

// CanonicalURL returns the published address of the note with the given slug.
func (s Site) CanonicalURL(slug string) string {
	return s.NotesURL() + slug + ".html"
}

// ImageURL returns Image, defaulting to the profile picture under Domain.
func (s Site) ImageURL() string {
	if s.Image != "" {
		return s.Image
	}
	return strings.TrimRight(s.Domain, "/") + "/images/profile.jpg"
}
