// Package testutil opens throwaway sqlite databases for package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/db"
)

// NewDB returns a migrated in-memory database private to the test.
// A single connection serialises transactions the way row locks do on postgres.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	return open(t, "")
}

// NewUTCDB is NewDB with timestamps read back in UTC, like pgx on a UTC host.
func NewUTCDB(t *testing.T) *gorm.DB {
	t.Helper()
	return open(t, "&_loc=UTC")
}

func open(t *testing.T, params string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000%s", uuid.NewString(), params)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return gdb
}
