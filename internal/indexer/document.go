package indexer

import (
	"fmt"
	"io/ioutil"

	log "github.com/sirupsen/logrus"

	"hurracloud.io/docsearch/internal/backend"
	"hurracloud.io/docsearch/internal/catalog"
	"hurracloud.io/docsearch/internal/indexer/utils"
)

// pageHref resolves the catalog page a content file belongs to.
func pageHref(settings *IndexSettings, filePath string) (catalog.Document, bool) {
	href, ok := utils.HrefForPath(settings.ContentDir, filePath)
	if !ok {
		return catalog.Document{}, false
	}
	return catalog.Lookup(href)
}

// loadDocument reads a content file into a backend document. ok is
// false when the file is not a searchable page.
func loadDocument(settings *IndexSettings, filePath string) (doc backend.Document, ok bool, err error) {
	page, found := pageHref(settings, filePath)
	if !found {
		log.Tracef("File %s is not a catalog page, skipping", filePath)
		return doc, false, nil
	}

	if !utils.IsIndexable(filePath, settings.FileSizeThreshold) {
		log.Tracef("File not indexable, skipping: %s", filePath)
		return doc, false, nil
	}

	content, err := ioutil.ReadFile(filePath)
	if err != nil {
		return doc, false, fmt.Errorf("Failed to read: %s: %s", filePath, err)
	}

	return backend.Document{ID: page.Href, Title: page.Title, Content: string(content)}, true, nil
}
