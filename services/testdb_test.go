package services

import (
	"path/filepath"
	"testing"

	"github.com/rkant062/fitback/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a throwaway SQLite database with the full schema migrated.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fitback-test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.DefaultTask{},
		&models.ActivityRecord{},
		&models.ChecklistTask{},
		&models.Expense{},
		&models.Category{},
		&models.SharedLedger{},
		&models.LedgerMember{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
