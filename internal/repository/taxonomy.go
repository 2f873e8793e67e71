package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Shelkonty/feedback-whole/internal/models"
)

// TaxonomyRepository defines the interface for category and status reads and
// category creation.
type TaxonomyRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListStatuses(ctx context.Context) ([]models.Status, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	CategoryExists(ctx context.Context, id int64) (bool, error)
	StatusExists(ctx context.Context, id int64) (bool, error)
}

type taxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository creates a new TaxonomyRepository instance.
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("id").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *taxonomyRepository) ListStatuses(ctx context.Context) ([]models.Status, error) {
	var statuses []models.Status
	err := r.db.WithContext(ctx).Order("id").Find(&statuses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	return statuses, nil
}

func (r *taxonomyRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category %q: %w", category.Name, err)
	}
	return nil
}

func (r *taxonomyRepository) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check category %d: %w", id, err)
	}
	return count > 0, nil
}

func (r *taxonomyRepository) StatusExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Status{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check status %d: %w", id, err)
	}
	return count > 0, nil
}
