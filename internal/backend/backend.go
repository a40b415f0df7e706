package backend

// SearchBackend stores page bodies for full-text search. Document IDs
// are page hrefs.
type SearchBackend interface {
	IndexDocuments(indexName string, docs []Document) error
	IndexDocument(indexName string, doc Document) error
	DeleteDocument(indexName string, id string) error
	DeleteIndex(indexName string) error
	SearchIndex(indexName string, query string, from int, limit int) ([]string, error)
	Close() error
}

type Document struct {
	ID      string
	Title   string
	Content string
}
