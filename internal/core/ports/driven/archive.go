package driven

// Archive persists UTF-8 text files: raw API responses, symbol tables
// and rendered documents.
type Archive interface {
	// WriteText writes content to path, creating parent directories.
	WriteText(path, content string) error

	// ReadText reads the file at path.
	// Returns domain.ErrNotFound if it does not exist.
	ReadText(path string) (string, error)

	// List returns the file names directly under dir, sorted.
	// Returns an empty slice if dir does not exist.
	List(dir string) ([]string, error)
}
