package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Shelkonty/feedback-whole/internal/models"
)

// VoteRepository defines the interface for vote data operations.
type VoteRepository interface {
	Find(ctx context.Context, userID, postID int64) (*models.Vote, error)
	// Create returns gorm.ErrDuplicatedKey (wrapped) when the (user, post)
	// pair already exists.
	Create(ctx context.Context, vote *models.Vote) error
	// Delete reports how many rows were removed; 0 means the vote was
	// already gone.
	Delete(ctx context.Context, userID, postID int64) (int64, error)
	CountForPost(ctx context.Context, postID int64) (int64, error)
	VotedPostIDs(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new VoteRepository instance.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Find(ctx context.Context, userID, postID int64) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&vote).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find vote (%d, %d): %w", userID, postID, err)
	}
	return &vote, nil
}

func (r *voteRepository) Create(ctx context.Context, vote *models.Vote) error {
	if err := r.db.WithContext(ctx).Create(vote).Error; err != nil {
		return fmt.Errorf("failed to create vote (%d, %d): %w", vote.UserID, vote.PostID, err)
	}
	return nil
}

func (r *voteRepository) Delete(ctx context.Context, userID, postID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Vote{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete vote (%d, %d): %w", userID, postID, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *voteRepository) CountForPost(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count votes for post %d: %w", postID, err)
	}
	return count, nil
}

// VotedPostIDs returns, for one user, which of the given posts carry their
// vote. Used to fill hasVoted flags for a whole page in a single query.
func (r *voteRepository) VotedPostIDs(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
	voted := make(map[int64]bool, len(postIDs))
	if len(postIDs) == 0 {
		return voted, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load voted posts for user %d: %w", userID, err)
	}
	for _, id := range ids {
		voted[id] = true
	}
	return voted, nil
}
