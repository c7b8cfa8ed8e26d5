package storage

import (
	"database/sql"
	"errors"

	"github.com/debemdeboas/quote-saver/internal/db"
	"github.com/debemdeboas/quote-saver/internal/util"
)

type SQLiteStore struct { // implements Store
	db db.DB
}

// NewSQLiteStore wraps an initialized database.
func NewSQLiteStore(db db.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SQLiteStore) Save(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := s.db.Exec(`
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, []byte(value))
	if err != nil {
		return err
	}

	storageLogger.Debug().Str("key", key).Str("hash", util.ShortHash(value)).Msg("Saved value")
	return nil
}

func (s *SQLiteStore) Remove(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM kv`)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
