package dataset

import (
	"context"

	"gorm.io/gorm"

	"github.com/pageza/pantrypal/backend/internal/model"
)

// DatabaseSource reads the recipe dataset from the recipes table. The table
// is treated as a dataset snapshot: it is read in full once at startup, the
// same way a file would be.
type DatabaseSource struct {
	db *gorm.DB
}

// NewDatabaseSource returns a source over an open GORM connection.
func NewDatabaseSource(db *gorm.DB) *DatabaseSource {
	return &DatabaseSource{db: db}
}

// Name identifies the source in errors and logs.
func (s *DatabaseSource) Name() string { return "database:recipes" }

// Fetch loads every recipe row ordered by ID, so corpus order is stable
// across restarts regardless of insert order.
func (s *DatabaseSource) Fetch(ctx context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Order("id").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
