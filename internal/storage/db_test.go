package storage

import (
	"path/filepath"
	"testing"
)

func TestOpenCreatesDirectoryAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "catalog.db")

	db, err := Open(DefaultConfig(path))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	var name string
	err = db.Conn().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='catalog_cards'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("expected catalog_cards table after migrations: %v", err)
	}
}

func TestOpenNilConfig(t *testing.T) {
	if _, err := Open(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	for i := 0; i < 2; i++ {
		db, err := Open(DefaultConfig(path))
		if err != nil {
			t.Fatalf("Open attempt %d failed: %v", i+1, err)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("Close attempt %d failed: %v", i+1, err)
		}
	}
}
