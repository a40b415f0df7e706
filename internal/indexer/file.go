package indexer

import (
	"os"

	log "github.com/sirupsen/logrus"

	"hurracloud.io/docsearch/internal/backend"
)

type FileIndexer struct {
	Backend       backend.SearchBackend
	IndexSettings *IndexSettings
}

// IndexFile brings the backend in line with one content file: changed
// pages are re-indexed and removed pages are deleted.
func (i *FileIndexer) IndexFile(filePath string) error {
	log.Tracef("Indexing %s in %s", filePath, i.IndexSettings.IndexIdentifier)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		page, ok := pageHref(i.IndexSettings, filePath)
		if !ok {
			return nil
		}
		log.Debugf("Page %s was removed, deleting it from index %s", page.Href, i.IndexSettings.IndexIdentifier)
		return i.Backend.DeleteDocument(i.IndexSettings.IndexIdentifier, page.Href)
	}

	doc, ok, err := loadDocument(i.IndexSettings, filePath)
	if err != nil || !ok {
		return err
	}

	return i.Backend.IndexDocument(i.IndexSettings.IndexIdentifier, doc)
}
