package seo

import (
	"encoding/json"
	"html/template"
)

// JSON marshals v for embedding in an ld+json script block. It returns an
// empty value on error.
func JSON(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return template.JS(b)
}

// Airline returns the schema.org Airline entity for the site footer.
func Airline(name, url, iataCode, logoURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Airline",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if iataCode != "" {
		m["iataCode"] = iataCode
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	return m
}

// NewsArticle returns a schema.org NewsArticle payload for article pages.
func NewsArticle(headline, url, imageURL, datePublished string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "NewsArticle",
		"headline": headline,
	}
	if url != "" {
		m["url"] = url
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	if datePublished != "" {
		m["datePublished"] = datePublished
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}
