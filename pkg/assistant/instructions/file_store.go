package instructions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps instructions in a small JSON file:
// {"instructions": "..."}.
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Read returns "" without error when the file does not exist yet.
func (s *FileStore) Read(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read instructions file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("decode instructions file %s: %w", s.path, err)
	}
	return doc.Instructions, nil
}

// Write replaces the file through a temp file and rename so a concurrent
// Read sees either the old or the new content.
func (s *FileStore) Write(ctx context.Context, instructions string) error {
	data, err := json.MarshalIndent(document{Instructions: instructions}, "", "    ")
	if err != nil {
		return fmt.Errorf("encode instructions: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create instructions dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".instructions-*.json")
	if err != nil {
		return fmt.Errorf("create temp instructions file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp instructions file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp instructions file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace instructions file: %w", err)
	}
	return nil
}
