package database

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"staffboard/internal/model"
	"staffboard/pkg/config"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSeedCreatesAccounts(t *testing.T) {
	db := testDB(t)
	seed := &config.SeedConfig{
		AdminUsername: "admin", AdminPassword: "secret",
		ViewerUsername: "viewer", ViewerPassword: "secret",
	}

	if err := Seed(db, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var admin model.User
	if err := db.Where("username = ?", "admin").First(&admin).Error; err != nil {
		t.Fatalf("expected admin account: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Errorf("expected admin role, got %q", admin.Role)
	}
	if admin.PasswordHash == "secret" {
		t.Error("password must be stored hashed")
	}

	// Seeding twice must not duplicate accounts.
	if err := Seed(db, seed); err != nil {
		t.Fatalf("seed again: %v", err)
	}
	var count int64
	db.Model(&model.User{}).Where("username = ?", "admin").Count(&count)
	if count != 1 {
		t.Errorf("expected 1 admin account, got %d", count)
	}
}

func TestSeedBackfillsAssignmentRows(t *testing.T) {
	db := testDB(t)

	// A worker written without an assignment row, as a crashed or legacy
	// writer could leave behind.
	if err := db.Create(&model.Worker{Name: "Orphan", Status: model.StatusActive}).Error; err != nil {
		t.Fatalf("create worker: %v", err)
	}

	if err := Seed(db, &config.SeedConfig{}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var count int64
	db.Model(&model.Assignment{}).Count(&count)
	if count != 1 {
		t.Errorf("expected the missing assignment row to be backfilled, got %d rows", count)
	}
}
