package seo

import "html/template"

// OpenGraph carries the og: meta tags.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
}

// Meta is the head metadata for one rendered page.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
	JSONLD      []template.JS
}

// ForPage builds default metadata from a page's SEO title and hero image.
func ForPage(title, description, canonical, imageURL string) Meta {
	return Meta{
		Title:       title,
		Description: description,
		Canonical:   canonical,
		OG: OpenGraph{
			Title:       title,
			Description: description,
			Image:       imageURL,
			Type:        "website",
		},
	}
}
