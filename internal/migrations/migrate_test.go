package migrations_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/littlemaker/configurador/internal/db"
	"github.com/littlemaker/configurador/internal/migrations"
)

func TestUpIsIdempotent(t *testing.T) {
	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "migrate-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	for i := 0; i < 3; i++ {
		if err := migrations.Up(database); err != nil {
			t.Fatalf("run migrations (iteration=%d): %v", i, err)
		}
	}

	v, err := migrations.Version(database)
	if err != nil {
		t.Fatalf("read version: %v", err)
	}
	if v != 2 {
		t.Fatalf("version = %d, want 2", v)
	}

	for _, table := range []string{"proposals", "config", "users"} {
		var n int
		if err := database.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n); err != nil {
			t.Fatalf("lookup table %s: %v", table, err)
		}
		if n != 1 {
			t.Fatalf("table %s missing", table)
		}
	}
}
