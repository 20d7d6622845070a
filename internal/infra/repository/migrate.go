package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or updates the tasks and users tables. Intended for local
// development and tests; production schemas are managed externally.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&taskRecord{}, &userRecord{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
