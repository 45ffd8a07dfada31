package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"staffboard/internal/model"
	"staffboard/pkg/config"
)

var DB *gorm.DB

// InitDB initializes the database connection with the provided configuration
func InitDB(cfg *config.Config) error {
	var err error

	logLevel := cfg.DB.LogLevel
	if logLevel == 0 {
		logLevel = logger.Warn
	}

	// PreferSimpleProtocol disables implicit prepared statement usage to
	// prevent "prepared statement already exists" errors
	pgConfig := postgres.Config{
		DSN:                  cfg.DB.GetDSN(),
		PreferSimpleProtocol: true,
	}

	DB, err = gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}

	if err := Migrate(DB); err != nil {
		return err
	}

	if err := Seed(DB, &cfg.Seed); err != nil {
		return err
	}

	return nil
}

// Migrate creates or updates the table structure for all models.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Worker{},
		&model.Area{},
		&model.Assignment{},
		&model.Team{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Seed ensures the configured admin and viewer accounts exist and backfills
// an Assignment row for any worker missing one.
func Seed(db *gorm.DB, seed *config.SeedConfig) error {
	if err := ensureUser(db, seed.AdminUsername, seed.AdminPassword, model.RoleAdmin); err != nil {
		return err
	}
	if err := ensureUser(db, seed.ViewerUsername, seed.ViewerPassword, model.RoleViewer); err != nil {
		return err
	}

	// Repair step: every live worker must have exactly one assignment row.
	var workers []model.Worker
	if err := db.Find(&workers).Error; err != nil {
		return err
	}
	for _, w := range workers {
		var count int64
		db.Model(&model.Assignment{}).Where("worker_id = ?", w.ID).Count(&count)
		if count == 0 {
			log.Printf("backfilling assignment row for worker %d", w.ID)
			if err := db.Create(&model.Assignment{WorkerID: w.ID}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func ensureUser(db *gorm.DB, username, password, role string) error {
	if username == "" {
		return nil
	}
	var count int64
	db.Model(&model.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&model.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}).Error
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
