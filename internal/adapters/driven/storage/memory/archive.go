package memory

import (
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driven"
)

// Ensure Archive implements the interface.
var _ driven.Archive = (*Archive)(nil)

// Archive is an in-memory implementation of driven.Archive.
// Paths are slash separated and cleaned before use.
type Archive struct {
	mu    sync.RWMutex
	files map[string]string
}

// NewArchive creates a new in-memory archive.
func NewArchive() *Archive {
	return &Archive{
		files: make(map[string]string),
	}
}

// WriteText stores content at p.
func (a *Archive) WriteText(p, content string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.files[path.Clean(p)] = content
	return nil
}

// ReadText returns the content stored at p.
func (a *Archive) ReadText(p string) (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	content, ok := a.files[path.Clean(p)]
	if !ok {
		return "", domain.ErrNotFound
	}
	return content, nil
}

// List returns the names of files stored directly under dir.
func (a *Archive) List(dir string) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	prefix := path.Clean(dir) + "/"
	names := make([]string, 0)
	for p := range a.files {
		rest, ok := strings.CutPrefix(p, prefix)
		if ok && !strings.Contains(rest, "/") {
			names = append(names, rest)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Paths returns every stored path, sorted.
func (a *Archive) Paths() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	paths := make([]string, 0, len(a.files))
	for p := range a.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
