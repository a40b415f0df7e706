package backend

import (
	"fmt"
	"strings"

	"github.com/expectedsh/go-sonic/sonic"
	log "github.com/sirupsen/logrus"
)

const sonicBucket = "docs"

type Sonic struct {
	ingester    sonic.Ingestable
	search      sonic.Searchable
	parallelism int
	host        string
	port        int
	password    string
}

func NewSonicBackend(host string, port int, password string, parallelism int) (*Sonic, error) {
	s := &Sonic{parallelism: parallelism, host: host, port: port, password: password}
	if err := s.connect(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sonic) connect() error {
	ingester, err := sonic.NewIngester(s.host, s.port, s.password)
	if err != nil {
		return fmt.Errorf("Failed to connect to sonic server: %v", err)
	}

	search, err := sonic.NewSearch(s.host, s.port, s.password)
	if err != nil {
		return fmt.Errorf("Failed to connect to sonic server: %v", err)
	}
	s.ingester = ingester
	s.search = search
	return nil
}

func (s *Sonic) reconnect() error {
	log.Warning("Re-connecting to Sonic backend")
	return s.connect()
}

func (s *Sonic) IndexDocuments(indexName string, docs []Document) error {
	var records []sonic.IngestBulkRecord
	for _, d := range docs {
		records = append(records, sonic.IngestBulkRecord{Object: d.ID, Text: sonicText(d)})
	}
	err := s.ingester.BulkPush(indexName, sonicBucket, s.parallelism, records)
	if err != nil {
		return fmt.Errorf("Sonic error while indexing documents: %v", err)
	}
	return nil
}

func (s *Sonic) IndexDocument(indexName string, d Document) error {
	err := s.ingester.FlushObject(indexName, sonicBucket, d.ID)
	if isSonicClosed(err) {
		if err = s.reconnect(); err == nil {
			err = s.ingester.FlushObject(indexName, sonicBucket, d.ID)
		}
	}
	if err != nil {
		return fmt.Errorf("Sonic error while indexing document: %v", err)
	}

	err = s.ingester.Push(indexName, sonicBucket, d.ID, sonicText(d))
	if err != nil {
		return fmt.Errorf("Sonic error while indexing document: %v", err)
	}
	return nil
}

func (s *Sonic) DeleteDocument(indexName string, id string) error {
	err := s.ingester.FlushObject(indexName, sonicBucket, id)
	if isSonicClosed(err) {
		if err = s.reconnect(); err == nil {
			err = s.ingester.FlushObject(indexName, sonicBucket, id)
		}
	}
	if err != nil {
		return fmt.Errorf("Sonic error while deleting document %s: %v", id, err)
	}
	return nil
}

func (s *Sonic) DeleteIndex(indexName string) error {
	err := s.ingester.FlushCollection(indexName)
	if isSonicClosed(err) {
		if err = s.reconnect(); err == nil {
			err = s.ingester.FlushCollection(indexName)
		}
	}

	if err != nil {
		return fmt.Errorf("Sonic error while deleting index %s: %v", indexName, err)
	}
	return nil
}

func (s *Sonic) SearchIndex(indexName string, query string, from int, limit int) ([]string, error) {
	results, err := s.search.Query(indexName, sonicBucket, query, limit, from)
	if isSonicClosed(err) {
		if err = s.reconnect(); err == nil {
			results, err = s.search.Query(indexName, sonicBucket, query, limit, from)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("Sonic error while fulfilling search request: %v", err)
	}
	return normalizeSonicResults(results), nil
}

func (s *Sonic) Close() error {
	if err := s.ingester.Quit(); err != nil {
		log.Debugf("Error closing sonic ingest channel: %v", err)
	}
	if err := s.search.Quit(); err != nil {
		log.Debugf("Error closing sonic search channel: %v", err)
	}
	return nil
}

// sonic only indexes text, so the title rides along with the body.
func sonicText(d Document) string {
	return strings.TrimSpace(d.Title + "\n" + d.Content)
}

func normalizeSonicResults(results []string) []string {
	if len(results) == 1 && results[0] == "" {
		return []string{} // sonic answers an empty result with one empty element
	}
	return results
}

func isSonicClosed(err error) bool {
	return err != nil && (err == sonic.ErrClosed || strings.Contains(err.Error(), "EOF"))
}
