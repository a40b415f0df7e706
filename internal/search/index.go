package search

import (
	"iter"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"hurracloud.io/docsearch/internal/catalog"
)

// Index answers title queries over a fixed, ordered list of documents.
// It never changes after construction and is safe for concurrent use.
type Index struct {
	docs []catalog.Document
}

func New(docs []catalog.Document) *Index {
	d := make([]catalog.Document, len(docs))
	copy(d, docs)
	return &Index{docs: d}
}

// Default returns an index over the site catalog.
func Default() *Index {
	return New(catalog.Documents())
}

func (i *Index) Len() int {
	return len(i.docs)
}

// Search yields, in list order, every document whose title contains
// query, ignoring case. Case folding is full Unicode lower casing, so
// "İ" folds to "i" followed by a combining dot. An empty query yields
// nothing.
func (i *Index) Search(query string) iter.Seq[catalog.Document] {
	return func(yield func(catalog.Document) bool) {
		if len(query) == 0 {
			return
		}

		// Casers are stateful, one per iteration.
		lower := cases.Lower(language.Und)
		q := lower.String(query)
		for _, d := range i.docs {
			if !strings.Contains(lower.String(d.Title), q) {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

// Matches collects Search into a slice. The result is never nil.
func (i *Index) Matches(query string) []catalog.Document {
	results := []catalog.Document{}
	for d := range i.Search(query) {
		results = append(results, d)
	}
	return results
}
