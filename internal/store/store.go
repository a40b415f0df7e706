package store

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"hurracloud.io/docsearch/internal/backend"
	"hurracloud.io/docsearch/internal/indexer"
)

var (
	ErrIndexDoesNotExist      = fmt.Errorf("Index Does Not Exist")
	ErrInvalidIndexIdentifier = fmt.Errorf("Invalid index identifier")
)

// ValidateIndexIdentifier rejects identifiers that would not name a
// single directory directly under the metadata dir.
func ValidateIndexIdentifier(indexName string) error {
	if indexName == "" || indexName == "." || indexName == ".." ||
		strings.ContainsAny(indexName, `/\`) || filepath.Base(indexName) != indexName {
		return fmt.Errorf("%w: %q", ErrInvalidIndexIdentifier, indexName)
	}
	return nil
}

// Store keeps index settings under MetadataDir and hands out indexers
// wired to the shared backend.
type Store struct {
	batchIndexers map[string]*indexer.BatchIndexer
	fileIndexers  map[string]*indexer.FileIndexer
	mu            sync.Mutex

	MetadataDir      string
	SearchBackend    backend.SearchBackend
	InterruptChannel <-chan string
}

func (s *Store) NewBatchIndexer(settings *indexer.IndexSettings) (*indexer.BatchIndexer, error) {
	if err := ValidateIndexIdentifier(settings.IndexIdentifier); err != nil {
		return nil, err
	}
	if err := s.saveSettingsToDisk(settings); err != nil {
		return nil, fmt.Errorf("Failed to save index settings on disk: %v", err)
	}

	// A previous index with the same name may have left a deleted
	// marker behind, see DeleteIndexer.
	os.Remove(s.deletedMarker(settings.IndexIdentifier))

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batchIndexer(settings), nil
}

func (s *Store) batchIndexer(settings *indexer.IndexSettings) *indexer.BatchIndexer {
	if s.batchIndexers == nil {
		s.batchIndexers = make(map[string]*indexer.BatchIndexer)
	}
	if s.fileIndexers != nil {
		delete(s.fileIndexers, settings.IndexIdentifier)
	}

	s.batchIndexers[settings.IndexIdentifier] = &indexer.BatchIndexer{
		IndexSettings:    settings,
		MetadataDir:      s.MetadataDir,
		Backend:          s.SearchBackend,
		InterruptChannel: s.InterruptChannel,
	}
	return s.batchIndexers[settings.IndexIdentifier]
}

// DeleteIndexer removes the index metadata and leaves a marker so that
// queued file jobs for it are dropped instead of failing.
func (s *Store) DeleteIndexer(indexName string) error {
	if err := ValidateIndexIdentifier(indexName); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.batchIndexers, indexName)
	delete(s.fileIndexers, indexName)
	s.mu.Unlock()

	os.RemoveAll(path.Join(s.MetadataDir, indexName))

	f, err := os.Create(s.deletedMarker(indexName))
	if err != nil {
		return fmt.Errorf("Could not create deleted state file: %s", err)
	}
	return f.Close()
}

func (s *Store) GetBatchIndexer(indexName string) (*indexer.BatchIndexer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.settingsPath(indexName)); os.IsNotExist(err) {
		return nil, ErrIndexDoesNotExist
	}

	if val, ok := s.batchIndexers[indexName]; ok {
		return val, nil
	}

	settings, err := s.ReadSettingsFromDisk(indexName)
	if err != nil {
		return nil, err
	}
	return s.batchIndexer(settings), nil
}

func (s *Store) GetFileIndexer(indexName string) (*indexer.FileIndexer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fileIndexers == nil {
		s.fileIndexers = make(map[string]*indexer.FileIndexer)
	}

	if val, ok := s.fileIndexers[indexName]; ok {
		return val, nil
	}

	settings, err := s.ReadSettingsFromDisk(indexName)
	if err != nil {
		return nil, err
	}

	s.fileIndexers[indexName] = &indexer.FileIndexer{
		Backend:       s.SearchBackend,
		IndexSettings: settings,
	}
	return s.fileIndexers[indexName], nil
}

func (s *Store) IsStaleIndex(indexName string) bool {
	_, err := os.Stat(s.deletedMarker(indexName))
	if os.IsNotExist(err) {
		return false
	} else if err != nil {
		log.Warningf("Could not determine if index %s is stale. Assume not to avoid losing data: %s", indexName, err)
		return false
	}
	return true
}

// Indices lists the identifiers of every index with settings on disk.
func (s *Store) Indices() ([]string, error) {
	matches, err := filepath.Glob(path.Join(s.MetadataDir, "*", "settings.json"))
	if err != nil {
		return nil, err
	}

	var names []string
	for _, m := range matches {
		names = append(names, path.Base(path.Dir(m)))
	}
	return names, nil
}

func (s *Store) saveSettingsToDisk(settings *indexer.IndexSettings) error {
	log.Debugf("Serializing %v", settings)
	file, err := json.MarshalIndent(settings, "", " ")
	if err != nil {
		return fmt.Errorf("Failed to serialize indexer: %s: %v", settings.IndexIdentifier, err)
	}
	err = os.MkdirAll(path.Join(s.MetadataDir, settings.IndexIdentifier), 0755)
	if err != nil {
		return fmt.Errorf("Error creating index metadata directory: %s: %v", settings.IndexIdentifier, err)
	}

	err = ioutil.WriteFile(s.settingsPath(settings.IndexIdentifier), file, 0644)
	log.Debugf("Writing %s to disk", string(file))
	if err != nil {
		return fmt.Errorf("Error while storing index metadata: %s: %v", settings.IndexIdentifier, err)
	}
	return nil
}

func (s *Store) ReadSettingsFromDisk(indexName string) (*indexer.IndexSettings, error) {
	if err := ValidateIndexIdentifier(indexName); err != nil {
		return nil, err
	}
	file, err := ioutil.ReadFile(s.settingsPath(indexName))
	if os.IsNotExist(err) {
		return nil, ErrIndexDoesNotExist
	} else if err != nil {
		return nil, fmt.Errorf("Error while reading index metadata: %s: %v", indexName, err)
	}

	indexSettings := &indexer.IndexSettings{}
	if err := json.Unmarshal(file, indexSettings); err != nil {
		return nil, fmt.Errorf("Error while reading index metadata: %s: %v", indexName, err)
	}
	return indexSettings, nil
}

func (s *Store) settingsPath(indexName string) string {
	return path.Join(s.MetadataDir, indexName, "settings.json")
}

func (s *Store) deletedMarker(indexName string) string {
	return path.Join(s.MetadataDir, fmt.Sprintf("%s.deleted", indexName))
}
