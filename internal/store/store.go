package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists one JSON series file per symbol under a fixed directory.
type Store struct {
	Dir string
}

// NewStore creates a Store rooted at dir. Call EnsureDir before saving.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// EnsureDir creates the output directory if it does not exist. A failure here
// is fatal to the run: nothing can be persisted without it.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("create output dir %s: %w", s.Dir, err)
	}
	return nil
}

// Save writes the series for symbol to <dir>/<symbol>.json, overwriting any
// previous file. The file name keeps the symbol verbatim, dots included, so
// downstream consumers can locate a symbol's data by convention.
func (s *Store) Save(symbol string, series json.RawMessage) (string, error) {
	path := filepath.Join(s.Dir, symbol+".json")

	var buf bytes.Buffer
	if err := json.Indent(&buf, series, "", "    "); err != nil {
		return "", fmt.Errorf("indent series for %s: %w", symbol, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
