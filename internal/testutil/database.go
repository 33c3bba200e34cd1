// Package testutil provides shared test helpers for database-backed tests.
package testutil

import (
	"context"
	"testing"

	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/model"
	"github.com/Lucsvieirabr/sistema-orbi-sub002/internal/storage"
)

// SetupTestDB creates an in-memory SQLite database with migrations applied
// and the given merchant entries seeded. Cleanup is registered on t.
func SetupTestDB(t *testing.T, merchants ...model.MerchantEntry) *storage.SQLiteStorage {
	t.Helper()

	db, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	for i := range merchants {
		if err := db.SaveMerchant(ctx, &merchants[i]); err != nil {
			t.Fatalf("failed to seed merchant %q: %v", merchants[i].CanonicalName, err)
		}
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}
