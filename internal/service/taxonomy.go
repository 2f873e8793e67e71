package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Shelkonty/feedback-whole/internal/models"
	"github.com/Shelkonty/feedback-whole/internal/repository"
	"github.com/Shelkonty/feedback-whole/pkg/logger"
)

var ErrCategoryNameTaken = errors.New("category name already exists")

const (
	categoriesCacheKey = "taxonomy:categories"
	statusesCacheKey   = "taxonomy:statuses"
	taxonomyCacheTTL   = 5 * time.Minute
)

// TaxonomyService serves the category/status reference data. Reads go
// through a Redis cache when a client is configured; cache failures fall
// back to the store silently.
type TaxonomyService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListStatuses(ctx context.Context) ([]models.Status, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
}

type taxonomyService struct {
	taxonomyRepo repository.TaxonomyRepository
	redis        *redis.Client
}

// NewTaxonomyService creates a new TaxonomyService instance. redisClient may
// be nil, in which case every read hits the store.
func NewTaxonomyService(taxonomyRepo repository.TaxonomyRepository, redisClient *redis.Client) TaxonomyService {
	return &taxonomyService{
		taxonomyRepo: taxonomyRepo,
		redis:        redisClient,
	}
}

func (s *taxonomyService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if s.cacheGet(ctx, categoriesCacheKey, &categories) {
		return categories, nil
	}

	categories, err := s.taxonomyRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, categoriesCacheKey, categories)
	return categories, nil
}

func (s *taxonomyService) ListStatuses(ctx context.Context) ([]models.Status, error) {
	var statuses []models.Status
	if s.cacheGet(ctx, statusesCacheKey, &statuses) {
		return statuses, nil
	}

	statuses, err := s.taxonomyRepo.ListStatuses(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, statusesCacheKey, statuses)
	return statuses, nil
}

func (s *taxonomyService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	category := models.Category{Name: name}
	if err := s.taxonomyRepo.CreateCategory(ctx, &category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryNameTaken
		}
		return nil, err
	}

	if s.redis != nil {
		if err := s.redis.Del(ctx, categoriesCacheKey).Err(); err != nil {
			logger.L.WithError(err).Warn("failed to invalidate category cache")
		}
	}
	return &category, nil
}

func (s *taxonomyService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.redis == nil {
		return false
	}
	payload, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.L.WithError(err).WithField("key", key).Warn("taxonomy cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		logger.L.WithError(err).WithField("key", key).Warn("taxonomy cache entry corrupt")
		return false
	}
	return true
}

func (s *taxonomyService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.redis == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, payload, taxonomyCacheTTL).Err(); err != nil {
		logger.L.WithError(err).WithField("key", key).Warn("taxonomy cache write failed")
	}
}
