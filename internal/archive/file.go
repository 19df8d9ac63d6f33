// Package archive persists the session archive. Every backend stores the
// archive as a single opaque JSON blob under one fixed slot: one read at
// startup, one full overwrite per completed session. No partial updates, no
// migrations, no versioning.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/uschan/reflecting-light/internal/domain"
)

// FileStore keeps the archive in one JSON file.
type FileStore struct {
	path string
	log  *zap.Logger
}

func NewFileStore(path string, log *zap.Logger) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("archive: empty file path")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("archive: mkdir data dir: %w", err)
	}
	return &FileStore{path: path, log: log}, nil
}

// Load reads the persisted archive. A missing file or unreadable payload
// yields an empty archive: the user never loses the app to a bad blob.
func (s *FileStore) Load() (domain.Archive, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Archive{}, nil
		}
		return nil, fmt.Errorf("archive: read %s: %w", s.path, err)
	}

	var a domain.Archive
	if err := json.Unmarshal(b, &a); err != nil {
		s.log.Warn("archive blob corrupt, resetting to empty",
			zap.String("path", s.path), zap.Error(err))
		return domain.Archive{}, nil
	}
	return a, nil
}

// Save overwrites the whole archive atomically (temp file + rename).
func (s *FileStore) Save(a domain.Archive) error {
	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("archive: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".tmp_archive_*")
	if err != nil {
		return fmt.Errorf("archive: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("archive: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("archive: sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("archive: close temp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("archive: chmod temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("archive: rename into place: %w", err)
	}
	return nil
}
