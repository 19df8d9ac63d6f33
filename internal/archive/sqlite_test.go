package archive

import (
	"path/filepath"
	"testing"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "archive.db"), nil)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	a, err := s.Load()
	if err != nil {
		t.Fatalf("Load empty: %v", err)
	}
	if len(a) != 0 {
		t.Fatalf("len=%d, want 0", len(a))
	}

	if err := s.Save(sampleArchive()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || got[0].ID != "item-2" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	// Second save replaces the slot in full.
	if err := s.Save(got[:1]); err != nil {
		t.Fatalf("Save again: %v", err)
	}
	got, err = s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len=%d, want 1", len(got))
	}
}

func TestSQLiteStoreCorruptSlotResets(t *testing.T) {
	t.Parallel()

	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "archive.db"), nil)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	if _, err := s.db.Exec(
		`INSERT INTO archive_slots (key, payload) VALUES (?, ?)`, slotKey, "{oops"); err != nil {
		t.Fatalf("seed corrupt slot: %v", err)
	}

	a, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(a) != 0 {
		t.Fatalf("corrupt slot yielded %d items", len(a))
	}
}
