// Package file provides a filesystem implementation of driven.Archive.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driven"
)

// Ensure Archive implements the interface.
var _ driven.Archive = (*Archive)(nil)

// Archive stores text files below a root directory.
// Paths are slash separated and relative to the root.
type Archive struct {
	root string
}

// NewArchive creates an archive rooted at root. The directory is created lazily.
func NewArchive(root string) *Archive {
	return &Archive{root: root}
}

// Root returns the archive root directory.
func (a *Archive) Root() string {
	return a.root
}

// WriteText writes content to p, creating parent directories.
func (a *Archive) WriteText(p, content string) error {
	full, err := a.resolve(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", p, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", p, err)
	}
	return nil
}

// ReadText reads the file at p.
func (a *Archive) ReadText(p string) (string, error) {
	full, err := a.resolve(p)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", domain.ErrNotFound, p)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", p, err)
	}
	return string(data), nil
}

// List returns the regular files directly under dir, sorted.
func (a *Archive) List(dir string) ([]string, error) {
	full, err := a.resolve(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(full)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// resolve maps a slash path below the root to a native path.
func (a *Archive) resolve(p string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(p))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path %q escapes the archive", domain.ErrInvalidInput, p)
	}
	return filepath.Join(a.root, clean), nil
}
