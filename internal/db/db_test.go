package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

const failedToInitDB = "Failed to initialize database: %v"

func newTestDB(t *testing.T) *SQLite {
	t.Helper()
	SetLogger(zerolog.New(os.Stdout).Level(zerolog.ErrorLevel))

	db := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err := db.InitDB(); err != nil {
		t.Fatalf(failedToInitDB, err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewSQLite(t *testing.T) {
	db := NewSQLite("./x.db")

	if db == nil {
		t.Fatal("Expected non-nil SQLite instance")
	}
	if db.conn != nil {
		t.Error("Expected connection to be nil initially")
	}
	if db.Path() != "./x.db" {
		t.Errorf("Expected path ./x.db, got %s", db.Path())
	}
}

func TestSQLiteBasicOperations(t *testing.T) {
	db := newTestDB(t)

	t.Run("InitDB creates the database file", func(t *testing.T) {
		if _, err := os.Stat(db.Path()); err != nil {
			t.Errorf("Expected database file to exist: %v", err)
		}
		if err := db.Get().Ping(); err != nil {
			t.Errorf("Failed to ping database: %v", err)
		}
	})

	t.Run("kv table exists", func(t *testing.T) {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", "kv").Scan(&name)
		if err != nil {
			t.Fatalf("Expected kv table to exist: %v", err)
		}
	})

	t.Run("Exec and QueryRow", func(t *testing.T) {
		result, err := db.Exec("INSERT INTO kv (key, value) VALUES (?, ?)", "quotes", []byte(`["A"]`))
		if err != nil {
			t.Fatalf("Failed to insert: %v", err)
		}
		if n, _ := result.RowsAffected(); n != 1 {
			t.Errorf("Expected 1 row affected, got %d", n)
		}

		var value []byte
		if err := db.QueryRow("SELECT value FROM kv WHERE key = ?", "quotes").Scan(&value); err != nil {
			t.Fatalf("Failed to query: %v", err)
		}
		if string(value) != `["A"]` {
			t.Errorf("Expected value [\"A\"], got %s", value)
		}
	})

	t.Run("Missing row", func(t *testing.T) {
		var value []byte
		err := db.QueryRow("SELECT value FROM kv WHERE key = ?", "absent").Scan(&value)
		if err != sql.ErrNoRows {
			t.Errorf("Expected sql.ErrNoRows, got %v", err)
		}
	})

	t.Run("Primary key is unique", func(t *testing.T) {
		_, err := db.Exec("INSERT INTO kv (key, value) VALUES (?, ?)", "quotes", []byte(`[]`))
		if err == nil {
			t.Error("Expected constraint violation for duplicate key")
		}
	})

	t.Run("Invalid SQL exec", func(t *testing.T) {
		if _, err := db.Exec("INVALID SQL SYNTAX"); err == nil {
			t.Error("Expected error for invalid SQL")
		}
	})
}

func TestSQLiteInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")

	first := NewSQLite(path)
	if err := first.InitDB(); err != nil {
		t.Fatalf(failedToInitDB, err)
	}
	if _, err := first.Exec("INSERT INTO kv (key, value) VALUES (?, ?)", "quotes", []byte(`["kept"]`)); err != nil {
		t.Fatalf("Failed to insert: %v", err)
	}
	first.Close()

	second := NewSQLite(path)
	if err := second.InitDB(); err != nil {
		t.Fatalf(failedToInitDB, err)
	}
	defer second.Close()

	var value string
	if err := second.QueryRow("SELECT value FROM kv WHERE key = ?", "quotes").Scan(&value); err != nil {
		t.Fatalf("Expected row to survive reopen: %v", err)
	}
	if value != `["kept"]` {
		t.Errorf("Expected [\"kept\"], got %s", value)
	}
}

func TestSQLiteClose(t *testing.T) {
	t.Run("Close uninitialized database", func(t *testing.T) {
		db := NewSQLite(filepath.Join(t.TempDir(), "unused.db"))
		if err := db.Close(); err != nil {
			t.Errorf("Expected no error closing uninitialized database, got: %v", err)
		}
	})

	t.Run("Close database twice", func(t *testing.T) {
		db := NewSQLite(filepath.Join(t.TempDir(), "close.db"))
		if err := db.InitDB(); err != nil {
			t.Fatalf(failedToInitDB, err)
		}
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close database first time: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close database second time: %v", err)
		}
	})
}

func TestDbInterface(t *testing.T) {
	var _ DB = (*SQLite)(nil)
}
