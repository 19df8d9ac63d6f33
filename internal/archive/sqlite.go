package archive

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/uschan/reflecting-light/internal/domain"
)

// slotKey is the single fixed slot the archive blob lives under.
const slotKey = "reflecting_light_archive"

// SQLiteStore keeps the archive blob in a one-row key/value table. Same
// contract as FileStore, just a different durable slot.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger
}

func NewSQLiteStore(dbPath string, log *zap.Logger) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.New("archive: empty db path")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("archive: mkdir db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("archive: open db: %w", err)
	}

	s := &SQLiteStore{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS archive_slots (
		key     TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	);`)
	return err
}

func (s *SQLiteStore) Load() (domain.Archive, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM archive_slots WHERE key = ?`, slotKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Archive{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("archive: query slot: %w", err)
	}

	var a domain.Archive
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		s.log.Warn("archive slot corrupt, resetting to empty", zap.Error(err))
		return domain.Archive{}, nil
	}
	return a, nil
}

func (s *SQLiteStore) Save(a domain.Archive) error {
	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("archive: marshal: %w", err)
	}
	_, err = s.db.Exec(`
	INSERT INTO archive_slots (key, payload) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`, slotKey, string(b))
	if err != nil {
		return fmt.Errorf("archive: upsert slot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
