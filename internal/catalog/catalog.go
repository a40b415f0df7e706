package catalog

import (
	"fmt"
)

var ErrUnknownDocument = fmt.Errorf("Unknown document")

// Document is a searchable page of the documentation site.
type Document struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

// Section is a sidebar group of the table of contents.
type Section struct {
	Title string
	Href  string
	Items []Document
}

var documents = [...]Document{
	{Title: "Introduction", Href: "/docs"},
	{Title: "Installation", Href: "/docs/installation"},
	{Title: "Project Structure", Href: "/docs/project-structure"},
	{Title: "Configuration", Href: "/docs/configuration"},
	{Title: "Routing", Href: "/docs/core-concepts/routing"},
	{Title: "Controllers", Href: "/docs/core-concepts/controllers"},
	{Title: "Models", Href: "/docs/core-concepts/models"},
	{Title: "Middleware", Href: "/docs/core-concepts/middleware"},
	{Title: "Database", Href: "/docs/database"},
	{Title: "Migrations", Href: "/docs/database/migrations"},
	{Title: "Query Builder", Href: "/docs/database/query-builder"},
	{Title: "Repositories", Href: "/docs/database/repositories"},
	{Title: "Authentication", Href: "/docs/features/authentication"},
	{Title: "Resources", Href: "/docs/features/resources"},
	{Title: "Rate Limiting", Href: "/docs/features/rate-limiting"},
	{Title: "CLI Commands", Href: "/docs/features/cli-commands"},
}

var sections = [...]Section{
	{
		Title: "Getting Started",
		Href:  "/docs",
		Items: []Document{
			{Title: "Introduction", Href: "/docs"},
			{Title: "Installation", Href: "/docs/installation"},
			{Title: "Project Structure", Href: "/docs/project-structure"},
			{Title: "Configuration", Href: "/docs/configuration"},
		},
	},
	{
		Title: "Core Concepts",
		Href:  "/docs/core-concepts",
		Items: []Document{
			{Title: "Routing", Href: "/docs/core-concepts/routing"},
			{Title: "Controllers", Href: "/docs/core-concepts/controllers"},
			{Title: "Models", Href: "/docs/core-concepts/models"},
			{Title: "Middleware", Href: "/docs/core-concepts/middleware"},
		},
	},
	{
		Title: "Database",
		Href:  "/docs/database",
		Items: []Document{
			{Title: "Getting Started", Href: "/docs/database"},
			{Title: "Migrations", Href: "/docs/database/migrations"},
			{Title: "Query Builder", Href: "/docs/database/query-builder"},
			{Title: "Repositories", Href: "/docs/database/repositories"},
		},
	},
	{
		Title: "Features",
		Href:  "/docs/features",
		Items: []Document{
			{Title: "Authentication", Href: "/docs/features/authentication"},
			{Title: "Resources", Href: "/docs/features/resources"},
			{Title: "Rate Limiting", Href: "/docs/features/rate-limiting"},
			{Title: "CLI Commands", Href: "/docs/features/cli-commands"},
		},
	},
	{
		Title: "Advanced",
		Href:  "/docs/advanced",
		Items: []Document{
			{Title: "Testing", Href: "/docs/advanced/testing"},
			{Title: "Deployment", Href: "/docs/advanced/deployment"},
			{Title: "Performance", Href: "/docs/advanced/performance"},
			{Title: "Security", Href: "/docs/advanced/security"},
		},
	},
}

// Documents returns the searchable pages in table of contents order.
// The returned slice is a copy.
func Documents() []Document {
	docs := make([]Document, len(documents))
	copy(docs, documents[:])
	return docs
}

func Lookup(href string) (Document, bool) {
	for _, d := range documents {
		if d.Href == href {
			return d, true
		}
	}
	return Document{}, false
}

// Sections returns the sidebar table of contents. The returned value
// shares nothing with the package state.
func Sections() []Section {
	out := make([]Section, len(sections))
	for i, s := range sections {
		items := make([]Document, len(s.Items))
		copy(items, s.Items)
		out[i] = Section{Title: s.Title, Href: s.Href, Items: items}
	}
	return out
}

// Neighbors returns the pages before and after href when reading the
// sidebar top to bottom, visiting each section's landing page before its
// items. Either may be nil at the ends.
func Neighbors(href string) (*Document, *Document, error) {
	pages := readingOrder()

	for i, p := range pages {
		if p.Href != href {
			continue
		}

		var prev, next *Document
		if i > 0 {
			d := pages[i-1]
			prev = &d
		}
		if i < len(pages)-1 {
			d := pages[i+1]
			next = &d
		}
		return prev, next, nil
	}

	return nil, nil, fmt.Errorf("%w: %s", ErrUnknownDocument, href)
}

// readingOrder flattens the sidebar, keeping the first occurrence of
// every href. Searchable pages keep their catalog title, so the
// "Getting Started" landing page reads as "Introduction" and the
// database landing page as "Database".
func readingOrder() []Document {
	seen := make(map[string]bool)
	var pages []Document
	add := func(d Document) {
		if seen[d.Href] {
			return
		}
		seen[d.Href] = true
		if known, ok := Lookup(d.Href); ok {
			d = known
		}
		pages = append(pages, d)
	}

	for _, s := range sections {
		add(Document{Title: s.Title, Href: s.Href})
		for _, item := range s.Items {
			add(item)
		}
	}
	return pages
}
