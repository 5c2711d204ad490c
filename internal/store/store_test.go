package store

import (
	"database/sql"
	"testing"

	"github.com/mvx-app/mvx/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// stores returns every Store implementation under test.
func stores(t *testing.T) map[string]Store {
	t.Helper()

	db := setupTestDB(t)
	t.Cleanup(func() { db.Close() })

	return map[string]Store{
		"sqlite": NewSQLiteStore(db),
		"memory": NewMemoryStore(),
	}
}

func TestStore(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("absent key", func(t *testing.T) {
				_, ok, err := s.Get("missing")
				if err != nil {
					t.Fatalf("get failed: %v", err)
				}
				if ok {
					t.Error("expected absent key to report ok=false")
				}
			})

			t.Run("set then get", func(t *testing.T) {
				if err := s.Set("greeting", `{"hello":"world"}`); err != nil {
					t.Fatalf("set failed: %v", err)
				}

				value, ok, err := s.Get("greeting")
				if err != nil {
					t.Fatalf("get failed: %v", err)
				}
				if !ok {
					t.Fatal("expected key to exist")
				}
				if value != `{"hello":"world"}` {
					t.Errorf("unexpected value: %q", value)
				}
			})

			t.Run("overwrite", func(t *testing.T) {
				if err := s.Set("counter", "1"); err != nil {
					t.Fatalf("set failed: %v", err)
				}
				if err := s.Set("counter", "2"); err != nil {
					t.Fatalf("second set failed: %v", err)
				}

				value, _, err := s.Get("counter")
				if err != nil {
					t.Fatalf("get failed: %v", err)
				}
				if value != "2" {
					t.Errorf("expected overwritten value 2, got %q", value)
				}
			})

			t.Run("remove", func(t *testing.T) {
				if err := s.Set("doomed", "x"); err != nil {
					t.Fatalf("set failed: %v", err)
				}
				if err := s.Remove("doomed"); err != nil {
					t.Fatalf("remove failed: %v", err)
				}

				_, ok, err := s.Get("doomed")
				if err != nil {
					t.Fatalf("get failed: %v", err)
				}
				if ok {
					t.Error("expected key to be absent after remove")
				}

				// removing again is a no-op
				if err := s.Remove("doomed"); err != nil {
					t.Errorf("removing absent key should not error: %v", err)
				}
			})
		})
	}
}

func TestFavoritesKey(t *testing.T) {
	if got := FavoritesKey("abc-123"); got != "favorites:abc-123" {
		t.Errorf("unexpected favorites key: %q", got)
	}
}
