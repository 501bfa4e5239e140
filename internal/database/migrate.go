package database

import (
	"gorm.io/gorm"

	"github.com/pageza/pantrypal/backend/internal/model"
)

// Migrate creates or updates the recipes table. The schema is a single
// dataset table, so GORM auto-migration covers both postgres and sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Recipe{})
}
