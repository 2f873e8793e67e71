package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Shelkonty/feedback-whole/internal/models"
)

var (
	seedStatuses   = []string{"Idea", "Planned", "In Progress", "Done"}
	seedCategories = []string{"Feature", "Bug", "UI", "Performance"}
)

// Seed inserts the reference taxonomy. Existing rows are left untouched, so
// the call is safe on every startup.
func Seed(db *gorm.DB) error {
	for _, name := range seedStatuses {
		status := models.Status{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&status).Error; err != nil {
			return fmt.Errorf("failed to seed status %q: %w", name, err)
		}
	}
	for _, name := range seedCategories {
		category := models.Category{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&category).Error; err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
	}
	return nil
}
