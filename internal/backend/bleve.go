package backend

import (
	"fmt"
	"os"
	"path"
	"sync"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/mapping"
	log "github.com/sirupsen/logrus"
)

type Bleve struct {
	metadataDir string
	openIndices map[string]bleve.Index
	mu          sync.Mutex
}

type bleveDoc struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NewBleveBackend stores indices under metadataDir. An empty
// metadataDir keeps every index in memory.
func NewBleveBackend(metadataDir string) (*Bleve, error) {
	if metadataDir != "" {
		if err := os.MkdirAll(metadataDir, 0755); err != nil {
			return nil, fmt.Errorf("Bleve error while creating metadata directory: %v", err)
		}
	}
	return &Bleve{
		metadataDir: metadataDir,
		openIndices: make(map[string]bleve.Index),
	}, nil
}

func (b *Bleve) IndexDocuments(indexName string, docs []Document) error {
	index, err := b.openIndex(indexName)
	if err != nil {
		return err
	}

	batch := index.NewBatch()
	for _, d := range docs {
		if err := batch.Index(d.ID, bleveDoc{Title: d.Title, Body: d.Content}); err != nil {
			log.Warningf("Bleve could not batch document %s: %v", d.ID, err)
		}
	}

	err = index.Batch(batch)
	if err != nil {
		return fmt.Errorf("Bleve error while batch indexing: %s: %v", indexName, err)
	}
	return nil
}

func (b *Bleve) IndexDocument(indexName string, d Document) error {
	index, err := b.openIndex(indexName)
	if err != nil {
		return err
	}
	if err := index.Index(d.ID, bleveDoc{Title: d.Title, Body: d.Content}); err != nil {
		return fmt.Errorf("Bleve error while indexing document: %s: %v", d.ID, err)
	}
	return nil
}

func (b *Bleve) DeleteDocument(indexName string, id string) error {
	index, err := b.openIndex(indexName)
	if err != nil {
		return err
	}
	if err := index.Delete(id); err != nil {
		return fmt.Errorf("Bleve error while deleting document: %s: %v", id, err)
	}
	return nil
}

func (b *Bleve) DeleteIndex(indexName string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if index, ok := b.openIndices[indexName]; ok {
		if err := index.Close(); err != nil {
			log.Warningf("Error while closing bleve index %s: %v", indexName, err)
		}
		delete(b.openIndices, indexName)
	}

	if b.metadataDir == "" {
		return nil
	}
	if err := os.RemoveAll(b.indexPath(indexName)); err != nil {
		return fmt.Errorf("Bleve error while deleting index: %s: %v", indexName, err)
	}
	return nil
}

func (b *Bleve) SearchIndex(indexName string, query string, from int, limit int) ([]string, error) {
	index, err := b.openIndex(indexName)
	if err != nil {
		return nil, err
	}

	bq := bleve.NewMatchQuery(query)
	search := bleve.NewSearchRequestOptions(bq, limit, from, false)
	searchResults, err := index.Search(search)

	if err != nil {
		log.Errorf("Error while searching bleve index: %s: %s", indexName, err)
		return nil, err
	}

	results := []string{}
	for _, h := range searchResults.Hits {
		results = append(results, h.ID)
	}
	return results, nil
}

func (b *Bleve) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var lastErr error
	for name, index := range b.openIndices {
		if err := index.Close(); err != nil {
			log.Errorf("Error while closing bleve index %s: %v", name, err)
			lastErr = err
		}
		delete(b.openIndices, name)
	}
	return lastErr
}

func (b *Bleve) openIndex(indexName string) (bleve.Index, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if index, ok := b.openIndices[indexName]; ok {
		return index, nil
	}

	var index bleve.Index
	var err error
	if b.metadataDir == "" {
		index, err = bleve.NewMemOnly(newIndexMapping())
	} else if _, serr := os.Stat(b.indexPath(indexName)); os.IsNotExist(serr) {
		index, err = bleve.New(b.indexPath(indexName), newIndexMapping())
	} else {
		index, err = bleve.Open(b.indexPath(indexName))
	}
	if err != nil {
		return nil, fmt.Errorf("Bleve error while opening index: %s: %v", indexName, err)
	}

	b.openIndices[indexName] = index
	return index, nil
}

func (b *Bleve) indexPath(indexName string) string {
	return path.Join(b.metadataDir, fmt.Sprintf("%s.bleve", indexName))
}

func newIndexMapping() mapping.IndexMapping {
	title := bleve.NewTextFieldMapping()
	title.Store = false
	body := bleve.NewTextFieldMapping()
	body.Store = false

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("title", title)
	doc.AddFieldMappingsAt("body", body)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}
