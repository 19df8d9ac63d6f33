package archive

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/uschan/reflecting-light/internal/domain"
)

// MemoryStore is a volatile backend for tests and no-persistence dev runs.
// It round-trips through JSON so it behaves like the durable backends.
type MemoryStore struct {
	mu      sync.Mutex
	payload []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (domain.Archive, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payload == nil {
		return domain.Archive{}, nil
	}
	var a domain.Archive
	if err := json.Unmarshal(s.payload, &a); err != nil {
		return domain.Archive{}, nil
	}
	return a, nil
}

func (s *MemoryStore) Save(a domain.Archive) error {
	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("archive: marshal: %w", err)
	}
	s.mu.Lock()
	s.payload = b
	s.mu.Unlock()
	return nil
}

// Corrupt replaces the stored payload with garbage. Test helper.
func (s *MemoryStore) Corrupt() {
	s.mu.Lock()
	s.payload = []byte("{not json")
	s.mu.Unlock()
}
