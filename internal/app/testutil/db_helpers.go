package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"twi-speech/internal/app/repository"
	"twi-speech/internal/app/repository/migrate"
	"twi-speech/internal/app/repository/pg"
	"twi-speech/internal/app/repository/sqlite"
)

// SetupTestDB creates a migrated test database. POSTGRES_TEST_URL selects
// PostgreSQL; otherwise a SQLite file in a temp directory is used.
func SetupTestDB(t *testing.T) *repository.CommonDB {
	t.Helper()

	if pgURL := os.Getenv("POSTGRES_TEST_URL"); pgURL != "" {
		return SetupTestPostgres(t, pgURL)
	}
	return SetupTestSQLite(t)
}

// SetupTestSQLite creates a SQLite test database with a unique name
func SetupTestSQLite(t *testing.T) *repository.CommonDB {
	t.Helper()

	testDBPath := filepath.Join(t.TempDir(), fmt.Sprintf("test_db_%d.sqlite", time.Now().UnixNano()))

	db, err := sqlite.NewSQLiteDB(fmt.Sprintf("file:%s?_busy_timeout=5000", testDBPath))
	if err != nil {
		t.Fatalf("Failed to create SQLite test database: %v", err)
	}

	if err := migrate.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to create test tables: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// SetupTestPostgres connects to a PostgreSQL test database and resets its tables
func SetupTestPostgres(t *testing.T, url string) *repository.CommonDB {
	t.Helper()

	db, err := pg.NewPostgresDB(url)
	if err != nil {
		t.Fatalf("Failed to connect to PostgreSQL test database: %v", err)
	}
	if err := db.DB().Ping(); err != nil {
		t.Fatalf("Failed to ping PostgreSQL test database: %v", err)
	}

	ctx := context.Background()
	if err := migrate.Migrate(ctx, db); err != nil {
		t.Fatalf("Failed to create test tables: %v", err)
	}
	ClearTables(t, db)

	t.Cleanup(func() {
		ClearTables(t, db)
		db.Close()
	})

	return db
}

// ClearTables removes all rows from the speaker and recording tables
func ClearTables(t *testing.T, db *repository.CommonDB) {
	t.Helper()

	for _, table := range []string{"recordings", "speakers"} {
		if _, err := db.DB().Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("Failed to clear %s: %v", table, err)
		}
	}
}
