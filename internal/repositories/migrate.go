package repositories

import (
	"stagestyle/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the SQL schema for every stored model.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Product{}, &models.Order{}, &models.User{}, &models.Credential{}); err != nil {
		return errors.Wrap(err, "failed to migrate database schema")
	}
	return nil
}
