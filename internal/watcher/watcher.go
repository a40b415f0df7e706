package watcher

import (
	"fmt"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/beeker1121/goque"
	rwatcher "github.com/radovskyb/watcher"
	log "github.com/sirupsen/logrus"

	"hurracloud.io/docsearch/internal/store"
)

// Watcher polls the content directory of every index and queues a
// FileIndexRequest for each page that changes.
type Watcher struct {
	MetadataDir  string
	IndexQueue   *goque.Queue
	PollInterval time.Duration
	rootDirMap   map[string]string
	store        *store.Store
	w            *rwatcher.Watcher
	mu           sync.Mutex
}

type FileIndexRequest struct {
	FilePath        string
	IndexIdentifier string
}

func New(metadataDir string, indexQueue *goque.Queue) *Watcher {
	w := rwatcher.New()
	w.FilterOps(rwatcher.Create, rwatcher.Write, rwatcher.Remove, rwatcher.Rename, rwatcher.Move)

	return &Watcher{
		MetadataDir:  metadataDir,
		IndexQueue:   indexQueue,
		PollInterval: 100 * time.Millisecond,
		store: &store.Store{
			MetadataDir: metadataDir,
		},
		rootDirMap: make(map[string]string),
		w:          w,
	}
}

// Watch sets up watchers for every known, non-paused index and blocks
// while polling. It returns once Close is called.
func (w *Watcher) Watch() error {
	indices, err := w.store.Indices()
	if err != nil {
		log.Warningf("Could not list indices to watch: %s", err)
	}

	for _, indexName := range indices {
		paused, err := w.isPaused(indexName)
		if err != nil {
			log.Warnf("Could not determine if watching %s is paused, will assume not to avoid missing new data: %s", indexName, err)
			paused = false
		}

		if paused {
			log.Warningf("index %s watcher is paused", indexName)
			continue
		}

		if err := w.addWatcher(indexName); err != nil {
			log.Debugf("Could not setup watcher for index: %s: %v", indexName, err)
		}
	}

	go func() {
		for {
			select {
			case event := <-w.w.Event:
				if event.IsDir() {
					continue
				}
				log.Tracef("Watcher event: %s", event)
				w.handle(event.Path)
				if event.Op == rwatcher.Rename || event.Op == rwatcher.Move {
					w.handle(event.OldPath)
				}
			case err := <-w.w.Error:
				log.Errorf("Watcher Error: %s", err)
			case <-w.w.Closed:
				return
			}
		}
	}()

	if err := w.w.Start(w.PollInterval); err != nil {
		return fmt.Errorf("Error starting watcher: %s", err)
	}

	return nil
}

// Wait blocks until Watch has started polling.
func (w *Watcher) Wait() {
	w.w.Wait()
}

func (w *Watcher) Close() {
	w.w.Close()
}

func (w *Watcher) handle(filePath string) {
	indexName, err := w.findIndexNameOfFile(filePath)
	if err != nil {
		log.Errorf("Error handling changed file: %s", err)
		return
	}

	log.Debugf("Enqueue index request for changed file %s in index %s", filePath, indexName)
	req := FileIndexRequest{IndexIdentifier: indexName, FilePath: filePath}
	if _, err := w.IndexQueue.EnqueueObject(&req); err != nil {
		log.Errorf("Failed to queue index request for %s: %v", filePath, err)
	}
}

func (w *Watcher) StopWatching(indexName string) error {
	if err := os.MkdirAll(path.Join(w.MetadataDir, indexName), 0755); err != nil {
		return fmt.Errorf("Could not create index metadata directory: %s", err)
	}

	pausedFile := path.Join(w.MetadataDir, indexName, "paused")
	f, err := os.Create(pausedFile)
	if err != nil {
		return fmt.Errorf("Could not create pause file: %s", err)
	}
	defer f.Close()

	return w.removeWatcher(indexName)
}

func (w *Watcher) StartOrResumeWatching(indexName string) error {
	// Remove paused file if it exists (relevant for resumed indices)
	pausedFile := path.Join(w.MetadataDir, indexName, "paused")
	if _, err := os.Stat(pausedFile); err == nil {
		err = os.Remove(pausedFile)
		if err != nil {
			return fmt.Errorf("Could not remove pause file: %s", err)
		}
	}

	return w.addWatcher(indexName)
}

func (w *Watcher) addWatcher(indexName string) error {
	indexSettings, err := w.store.ReadSettingsFromDisk(indexName)
	if err != nil {
		return fmt.Errorf("Error while reading index metadata. Will not setup watcher: %s: %v", indexName, err)
	}

	w.mu.Lock()
	w.rootDirMap[indexSettings.ContentDir] = indexName
	w.mu.Unlock()

	log.Infof("Setting up watcher for index: %s at location: %s", indexName, indexSettings.ContentDir)
	return w.w.AddRecursive(indexSettings.ContentDir)
}

func (w *Watcher) removeWatcher(indexName string) error {
	indexSettings, err := w.store.ReadSettingsFromDisk(indexName)
	if err == store.ErrIndexDoesNotExist {
		return nil
	} else if err != nil {
		return fmt.Errorf("Error while reading index metadata. Will not remove watcher: %s: %v", indexName, err)
	}

	w.mu.Lock()
	delete(w.rootDirMap, indexSettings.ContentDir)
	w.mu.Unlock()

	log.Info("Removing watcher of index: ", indexName)
	if err := w.w.RemoveRecursive(indexSettings.ContentDir); err != nil {
		log.Debugf("Content dir of index %s was not watched: %v", indexName, err)
	}
	return nil
}

// findIndexNameOfFile picks the index with the longest content dir
// containing filePath.
func (w *Watcher) findIndexNameOfFile(filePath string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	best := ""
	index := ""
	for dir, name := range w.rootDirMap {
		if (filePath == dir || strings.HasPrefix(filePath, strings.TrimSuffix(dir, "/")+"/")) && len(dir) > len(best) {
			best = dir
			index = name
		}
	}
	if index == "" {
		return "", fmt.Errorf("Could not find index of file %s", filePath)
	}
	log.Tracef("File %s belongs to index %s", filePath, index)
	return index, nil
}

func (w *Watcher) isPaused(indexName string) (bool, error) {
	pausedFile := path.Join(w.MetadataDir, indexName, "paused")
	_, err := os.Stat(pausedFile)
	if os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return true, nil
}
