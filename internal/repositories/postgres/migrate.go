package postgres

import (
	"fmt"

	"github.com/SAP-F-2025/testing-service/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables, join table and unique indexes
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Test{},
		&models.Submission{},
	); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}
