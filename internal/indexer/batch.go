package indexer

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"

	log "github.com/sirupsen/logrus"

	"hurracloud.io/docsearch/internal/backend"
)

// BatchIndexer walks a content directory and feeds every page into the
// backend. Progress is kept on disk so an interrupted run resumes where
// it stopped.
type BatchIndexer struct {
	IndexSettings     *IndexSettings
	MetadataDir       string
	Backend           backend.SearchBackend
	InterruptChannel  <-chan string
	progressFileMutex sync.Mutex
}

func (z *BatchIndexer) indexPlanFile() string {
	return path.Join(z.MetadataDir, z.IndexSettings.IndexIdentifier, "index.plan")
}

func (z *BatchIndexer) indexProgressFile() string {
	return path.Join(z.MetadataDir, z.IndexSettings.IndexIdentifier, "index.progress")
}

// Index starts a new run, resumes an interrupted one, or starts over
// when the previous run finished.
func (z *BatchIndexer) Index() error {
	var err error
	totalDocs := -1
	if !z.isResumable() {
		z.removePlan()
		totalDocs, err = z.buildIndexPlan()
		if err != nil {
			return fmt.Errorf("Failed to build index plan file: %s", err)
		}
	}

	if err = z.executeIndexPlan(totalDocs); err != nil {
		return fmt.Errorf("Failed while indexing %s: %v", z.IndexSettings.IndexIdentifier, err)
	}

	return nil
}

// CheckProgress returns the number of planned files, how many were
// processed, and the percentage done.
func (z *BatchIndexer) CheckProgress() (int, int, float64, error) {
	if _, err := os.Stat(z.indexProgressFile()); os.IsNotExist(err) {
		log.Tracef("Could not find progress file for index %s. Assuming progress is 0", z.IndexSettings.IndexIdentifier)
		return 0, 0, 0, nil
	}

	f, err := os.Open(z.indexProgressFile())
	if err != nil {
		return 0, 0, 0, fmt.Errorf("Could not open index progress file: %s: %s", z.indexProgressFile(), err)
	}
	defer f.Close()

	_, cur, total, err := readProgressFileValues(f)

	if err != nil {
		return 0, 0, 0, fmt.Errorf("Error reading progress file values: %s", err)
	}

	return total, cur, percentage(cur, total), nil
}

func (z *BatchIndexer) DeleteIndex() error {
	z.removePlan()

	if err := z.Backend.DeleteIndex(z.IndexSettings.IndexIdentifier); err != nil {
		return fmt.Errorf("Failed to delete backend index: %v", err)
	}

	return nil
}

func (z *BatchIndexer) removePlan() {
	os.Remove(z.indexPlanFile())
	os.Remove(z.indexProgressFile())
}

// isResumable reports whether a previous run left a plan behind that
// has not been fully processed.
func (z *BatchIndexer) isResumable() bool {
	if _, err := os.Stat(z.indexPlanFile()); err != nil {
		return false
	}

	f, err := os.Open(z.indexProgressFile())
	if err != nil {
		return false
	}
	defer f.Close()

	_, cur, total, err := readProgressFileValues(f)
	return err == nil && cur < total
}

func (z *BatchIndexer) buildIndexPlan() (int, error) {
	log.Infof("Build index plan of index %s", z.IndexSettings.IndexIdentifier)

	if err := os.MkdirAll(path.Dir(z.indexPlanFile()), 0755); err != nil {
		return 0, err
	}

	f, err := os.OpenFile(z.indexPlanFile(), os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	compiledPatterns := CompileExcludePatterns(z.IndexSettings.ExcludePatterns)

	totalDocs := 0
	err = filepath.Walk(z.IndexSettings.ContentDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warningf("Could not walk content path: %s", err)
			return nil
		}

		if IsExcluded(compiledPatterns, path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if _, err = f.WriteString(fmt.Sprintf("%s\n", path)); err != nil {
			return fmt.Errorf("Could not write to index plan file: %s", err)
		}
		totalDocs++
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("Could not write to index plan file: %s", err)
	}

	return totalDocs, nil
}

func (z *BatchIndexer) executeIndexPlan(totalDocs int) error {
	log.Infof("Start/Resume indexing of index %s", z.IndexSettings.IndexIdentifier)

	f, err := os.Open(z.indexPlanFile())
	if err != nil {
		return fmt.Errorf("Could not read index plan file: %s: %s", z.indexPlanFile(), err)
	}
	defer f.Close()

	// Determine if we're resuming or starting from scratch
	start := int64(0)
	startLine := 0

	if pf, perr := os.Open(z.indexProgressFile()); perr == nil {
		start, startLine, totalDocs, err = readProgressFileValues(pf)
		pf.Close()
		if err != nil {
			return fmt.Errorf("Failed to read progress file: %s", err)
		}

		if _, err := f.Seek(start, io.SeekStart); err != nil {
			return fmt.Errorf("Failed to seek plan file to resume position: %s", err)
		}
		log.Debugf("Resuming index %s at line %d of %d", z.IndexSettings.IndexIdentifier, startLine, totalDocs)
	}

	// Scan plan file while maintaining our progress in bytes and line number
	scanner := bufio.NewScanner(f)
	pos := start
	posLine := startLine
	scanLines := func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		advance, token, err = bufio.ScanLines(data, atEOF)
		pos += int64(advance)
		return
	}
	scanner.Split(scanLines)

	parallelism := z.IndexSettings.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	var bulk []backend.Document
	flush := func() error {
		if len(bulk) > 0 {
			log.Infof("Starting Bulk Indexing of %d pages (index=%s)", len(bulk), z.IndexSettings.IndexIdentifier)
			if err := z.Backend.IndexDocuments(z.IndexSettings.IndexIdentifier, bulk); err != nil {
				return err
			}
			bulk = nil
		}
		return z.saveProgress(pos, posLine, totalDocs)
	}

OUTER:
	for {
		select {
		case indexID := <-z.InterruptChannel:
			if indexID == z.IndexSettings.IndexIdentifier {
				log.Warningf("Indexing of %s interrupted", z.IndexSettings.IndexIdentifier)
				return flush()
			}
			log.Warningf("Indexing of %s interrupted. But we are not indexing %s currently. Ignoring request", indexID, indexID)
		default:
			for scanner.Scan() {
				filePath := scanner.Text()
				posLine++

				doc, ok, err := loadDocument(z.IndexSettings, filePath)
				if err != nil {
					log.Warningf("Skipping %s: %v", filePath, err)
					continue
				}
				if !ok {
					continue
				}

				bulk = append(bulk, doc)
				if len(bulk) >= parallelism {
					if err := flush(); err != nil {
						return err
					}
					log.Debugf("Indexed %d out of %d files (index=%s, progress=%f)", posLine, totalDocs, z.IndexSettings.IndexIdentifier, percentage(posLine, totalDocs))
					continue OUTER
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("Error while scanning plan file: %s", err)
			}
			return flush()
		}
	}
}

func (z *BatchIndexer) saveProgress(posBytes int64, posLines int, totalLines int) error {
	z.progressFileMutex.Lock()
	defer z.progressFileMutex.Unlock()

	content := fmt.Sprintf("%v\n%v\n%v", posBytes, posLines, totalLines)
	if err := os.WriteFile(z.indexProgressFile(), []byte(content), 0644); err != nil {
		return fmt.Errorf("Could not save progress: %v", err)
	}
	return nil
}

// CompileExcludePatterns compiles patterns, quoting the ones that are
// not valid regular expressions.
func CompileExcludePatterns(patterns []string) []*regexp.Regexp {
	var compiledPatterns []*regexp.Regexp
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err == nil {
			compiledPatterns = append(compiledPatterns, re)
			log.Debugf("Added ExcludePattern: %s", pattern)
			continue
		}

		log.Warningf("Invalid regexp was provided in ExcludedPatterns, escaping pattern: %s", pattern)
		re, err = regexp.Compile(regexp.QuoteMeta(pattern))
		if err == nil {
			compiledPatterns = append(compiledPatterns, re)
			log.Debugf("Added Escaped ExcludePattern: %s", pattern)
		}
	}
	return compiledPatterns
}

func IsExcluded(patterns []*regexp.Regexp, path string) bool {
	for _, re := range patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

func percentage(cur int, total int) float64 {
	if total <= 0 {
		return 100
	}
	return math.Ceil((float64(cur) / float64(total)) * 100)
}

func readProgressFileValues(file io.Reader) (int64, int, int, error) {
	scanner := bufio.NewScanner(file)
	var values []string
	for len(values) < 3 && scanner.Scan() {
		values = append(values, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return 0, 0, 0, fmt.Errorf("Error reading progress file: %s", err)
	}
	if len(values) < 3 {
		return 0, 0, 0, fmt.Errorf("Progress file is truncated: %v", values)
	}

	start, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("Error parsing contents of progress file %s: %s", values[0], err)
	}

	startLine, err := strconv.Atoi(values[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("Error parsing contents of progress file %s: %s", values[1], err)
	}

	totalDocs, err := strconv.Atoi(values[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("Error parsing contents of progress file %s: %s", values[2], err)
	}
	return start, startLine, totalDocs, nil
}
