package database

import (
	"fmt"
	"log/slog"

	"tourhub/internal/config"
	"tourhub/internal/http-api/models"
	"tourhub/internal/middleware/auth"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}

func runMigrations(db *gorm.DB, logger *slog.Logger) error {
	err := db.AutoMigrate(
		&models.Tour{},
		&models.TourRating{},
		&models.Role{},
		&models.User{},
		&models.RefreshToken{},
	)
	if err != nil {
		return err
	}

	logger.Info("Database migrations applied successfully")
	return nil
}

// Seed inserts the security roles, a CSR account, and a starter tour
// catalogue when the corresponding tables are empty.
func Seed(db *gorm.DB, logger *slog.Logger) error {
	if err := seedRoles(db); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}
	if err := seedUsers(db); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := seedTours(db); err != nil {
		return fmt.Errorf("failed to seed tours: %w", err)
	}

	logger.Info("Database seed data ensured")
	return nil
}

func seedRoles(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Role{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	roles := []models.Role{
		{Name: "ROLE_CSR", Description: "Customer service representative"},
		{Name: "ROLE_CUSTOMER", Description: "Registered customer"},
	}
	return db.Create(&roles).Error
}

func seedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var csrRole models.Role
	if err := db.Where("role_name = ?", "ROLE_CSR").First(&csrRole).Error; err != nil {
		return err
	}

	// Default CSR account for bootstrapping; change the password after first login.
	hashed, err := auth.HashPassword("letmein-csr")
	if err != nil {
		return err
	}

	csr := models.User{
		Username: "csr_admin",
		Password: hashed,
		Roles:    []models.Role{csrRole},
	}
	return db.Create(&csr).Error
}

func seedTours(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Tour{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tours := []models.Tour{
		{Title: "Big Sur Retreat", Description: "Three days hiking the Big Sur coastline", Price: 750, Duration: "3 days", Difficulty: "Medium", Region: "Central Coast"},
		{Title: "Channel Islands Excursion", Description: "Kayak the sea caves of Santa Cruz Island", Price: 150, Duration: "1 day", Difficulty: "Easy", Region: "Southern California"},
		{Title: "Death Valley Survivors Trek", Description: "Guided desert crossing for experienced hikers", Price: 200, Duration: "2 days", Difficulty: "Hard", Region: "Desert"},
	}
	return db.Create(&tours).Error
}
