package testutil

import (
	"path/filepath"
	"testing"

	"clubhouse/config"
	"clubhouse/database"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.Default().Database
	cfg.Driver = "sqlite"
	cfg.Path = filepath.Join(t.TempDir(), "test.db")
	cfg.MaxOpenConns = 1

	db, err := database.Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})

	if err := database.RunMigrations(db, zerolog.Nop()); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
