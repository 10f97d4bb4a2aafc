package journal

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// SaveImage stores a memory photo in the blob area and returns the relative
// path recorded on the memory row. The bytes are stored opaquely; no image
// processing happens here.
func (s *Store) SaveImage(date, title string, data []byte) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ensureInitializedLocked() {
		return "", false
	}
	if len(data) == 0 {
		return "", false
	}

	relPath := path.Join(imagesDir, fmt.Sprintf("%s_%s.jpg", date, sanitizeTitle(title)))
	if err := os.WriteFile(filepath.Join(s.dir, filepath.FromSlash(relPath)), data, 0o644); err != nil {
		log.Printf("[journal] failed to save image %s: %v", relPath, err)
		return "", false
	}
	return relPath, true
}

// LoadImage reads a blob previously stored by SaveImage. Paths escaping the
// blob area are rejected.
func (s *Store) LoadImage(relPath string) ([]byte, bool) {
	cleaned := path.Clean(strings.TrimPrefix(relPath, "/"))
	if cleaned == "" || !strings.HasPrefix(cleaned, imagesDir+"/") {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(cleaned)))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[journal] failed to read image %s: %v", cleaned, err)
		}
		return nil, false
	}
	return data, true
}
