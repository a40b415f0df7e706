package utils

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	log "github.com/sirupsen/logrus"
)

// IsIndexable reports whether path is a regular text file smaller than
// maxBytes. A maxBytes of 0 disables the size check.
func IsIndexable(path string, maxBytes int64) bool {
	log.Tracef("Checking if %v is indexable", path)

	stat, err := os.Stat(path)
	if err != nil {
		log.Debugf("Could not stat %s. Will assume non-indexable: %s", path, err)
		return false
	}

	if mode := stat.Mode(); !mode.IsRegular() {
		return false
	}

	if maxBytes > 0 && stat.Size() >= maxBytes {
		log.Infof("File %s (size=%d bytes) is larger than threshold %d bytes, will not index", path, stat.Size(), maxBytes)
		return false
	}

	detectedMIME, err := mimetype.DetectFile(path)
	if err != nil {
		log.Warningf("Could not detect MIME for %s. Assuming file is indexable", path)
		return true
	}

	for mime := detectedMIME; mime != nil; mime = mime.Parent() {
		if mime.Is("text/plain") {
			return true
		}
	}

	return false
}

// HrefForPath maps a page file under contentDir to the site path it is
// served at: docs/installation.md and docs/installation/page.tsx both
// map to /docs/installation.
func HrefForPath(contentDir string, filePath string) (string, bool) {
	rel, err := filepath.Rel(contentDir, filePath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	switch path.Base(rel) {
	case "index", "page":
		rel = path.Dir(rel)
	}

	return path.Clean("/" + rel), true
}
