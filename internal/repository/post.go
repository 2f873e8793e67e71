package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Shelkonty/feedback-whole/internal/models"
)

// voteCountSelect attaches the per-post vote cardinality to every row read.
const voteCountSelect = "posts.*, (SELECT count(*) FROM votes WHERE votes.post_id = posts.id) AS votes"

// PostFilter narrows and pages a post listing. Offset and Limit are assumed
// to be normalized by the caller.
type PostFilter struct {
	CategoryID  *int64
	StatusID    *int64
	Offset      int
	Limit       int
	SortByVotes bool
}

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	List(ctx context.Context, filter PostFilter) ([]models.Post, int64, error)
	FindByID(ctx context.Context, id int64) (*models.Post, error)
	FindByIDHydrated(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository instance.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]models.Post, int64, error) {
	var total int64
	countQuery := r.applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter).
		Select(voteCountSelect).
		Preload("Author").
		Preload("Category").
		Preload("Status")

	if filter.SortByVotes {
		query = query.Order("votes DESC, posts.id ASC")
	} else {
		query = query.Order("posts.created_at DESC, posts.id DESC")
	}

	var posts []models.Post
	err := query.Offset(filter.Offset).Limit(filter.Limit).Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

func (r *postRepository) applyFilter(query *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.CategoryID != nil {
		query = query.Where("posts.category_id = ?", *filter.CategoryID)
	}
	if filter.StatusID != nil {
		query = query.Where("posts.status_id = ?", *filter.StatusID)
	}
	return query
}

func (r *postRepository) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find post by id %d: %w", id, err)
	}
	return &post, nil
}

func (r *postRepository) FindByIDHydrated(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Select(voteCountSelect).
		Preload("Author").
		Preload("Category").
		Preload("Status").
		Where("posts.id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find post by id %d: %w", id, err)
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return fmt.Errorf("failed to update post id %d: %w", post.ID, err)
	}
	return nil
}

// Delete removes the post and its votes in one transaction.
func (r *postRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete post id %d: %w", id, err)
	}
	return nil
}
