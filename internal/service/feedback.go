package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Shelkonty/feedback-whole/internal/models"
	"github.com/Shelkonty/feedback-whole/internal/repository"
)

var (
	ErrPostNotFound     = errors.New("feedback not found")
	ErrNotPostAuthor    = errors.New("not the author of this feedback")
	ErrCategoryNotFound = errors.New("category not found")
	ErrStatusNotFound   = errors.New("status not found")
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	// SortByVotes orders a listing by vote count instead of recency.
	SortByVotes = "votes"
)

// ListParams selects and pages a feedback listing. UserID, when non-nil,
// identifies the authenticated caller whose hasVoted flags are computed.
type ListParams struct {
	CategoryID *int64
	StatusID   *int64
	Page       int
	Limit      int
	SortBy     string
	UserID     *int64
}

// Pagination describes a listing page.
type Pagination struct {
	Total       int64 `json:"total"`
	Pages       int   `json:"pages"`
	CurrentPage int   `json:"currentPage"`
}

// FeedbackList is one page of posts.
type FeedbackList struct {
	Posts      []models.Post `json:"posts"`
	Pagination Pagination    `json:"pagination"`
}

// PostInput carries the writable fields of a post. Updates are a full
// replace of all four fields.
type PostInput struct {
	Title       string
	Description string
	CategoryID  int64
	StatusID    int64
}

// VoteResult reports the state after a toggle.
type VoteResult struct {
	Voted bool
	Votes int64
}

// FeedbackService handles posts and votes.
type FeedbackService interface {
	List(ctx context.Context, params ListParams) (*FeedbackList, error)
	Create(ctx context.Context, authorID int64, input PostInput) (*models.Post, error)
	Update(ctx context.Context, userID, postID int64, input PostInput) (*models.Post, error)
	Delete(ctx context.Context, userID, postID int64) error
	ToggleVote(ctx context.Context, userID, postID int64) (*VoteResult, error)
}

type feedbackService struct {
	postRepo     repository.PostRepository
	voteRepo     repository.VoteRepository
	taxonomyRepo repository.TaxonomyRepository
}

// NewFeedbackService creates a new FeedbackService instance.
func NewFeedbackService(postRepo repository.PostRepository, voteRepo repository.VoteRepository, taxonomyRepo repository.TaxonomyRepository) FeedbackService {
	return &feedbackService{
		postRepo:     postRepo,
		voteRepo:     voteRepo,
		taxonomyRepo: taxonomyRepo,
	}
}

func (s *feedbackService) List(ctx context.Context, params ListParams) (*FeedbackList, error) {
	page := params.Page
	if page < 1 {
		page = defaultPage
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	posts, total, err := s.postRepo.List(ctx, repository.PostFilter{
		CategoryID:  params.CategoryID,
		StatusID:    params.StatusID,
		Offset:      (page - 1) * limit,
		Limit:       limit,
		SortByVotes: params.SortBy == SortByVotes,
	})
	if err != nil {
		return nil, err
	}

	if params.UserID != nil {
		if err := s.fillVoteFlags(ctx, *params.UserID, posts); err != nil {
			return nil, err
		}
	}

	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}

	if posts == nil {
		posts = []models.Post{}
	}
	return &FeedbackList{
		Posts: posts,
		Pagination: Pagination{
			Total:       total,
			Pages:       pages,
			CurrentPage: page,
		},
	}, nil
}

func (s *feedbackService) fillVoteFlags(ctx context.Context, userID int64, posts []models.Post) error {
	ids := make([]int64, len(posts))
	for i, post := range posts {
		ids[i] = post.ID
	}
	voted, err := s.voteRepo.VotedPostIDs(ctx, userID, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].HasVoted = voted[posts[i].ID]
	}
	return nil
}

func (s *feedbackService) Create(ctx context.Context, authorID int64, input PostInput) (*models.Post, error) {
	if err := s.checkTaxonomy(ctx, input); err != nil {
		return nil, err
	}

	post := models.Post{
		Title:       input.Title,
		Description: input.Description,
		AuthorID:    authorID,
		CategoryID:  input.CategoryID,
		StatusID:    input.StatusID,
	}
	if err := s.postRepo.Create(ctx, &post); err != nil {
		return nil, err
	}
	return s.postRepo.FindByIDHydrated(ctx, post.ID)
}

func (s *feedbackService) Update(ctx context.Context, userID, postID int64, input PostInput) (*models.Post, error) {
	post, err := s.findOwned(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if err := s.checkTaxonomy(ctx, input); err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Description = input.Description
	post.CategoryID = input.CategoryID
	post.StatusID = input.StatusID
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.FindByIDHydrated(ctx, postID)
}

func (s *feedbackService) Delete(ctx context.Context, userID, postID int64) error {
	if _, err := s.findOwned(ctx, userID, postID); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleVote flips the caller's vote on a post. The unique (user, post)
// index resolves concurrent double-submission: a duplicate-key insert means
// another request already voted, a zero-row delete means it already unvoted.
// Either way the post ends up in exactly one consistent state.
func (s *feedbackService) ToggleVote(ctx context.Context, userID, postID int64) (*VoteResult, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	voted := true
	_, err := s.voteRepo.Find(ctx, userID, postID)
	switch {
	case err == nil:
		if _, err := s.voteRepo.Delete(ctx, userID, postID); err != nil {
			return nil, err
		}
		voted = false
	case errors.Is(err, gorm.ErrRecordNotFound):
		err := s.voteRepo.Create(ctx, &models.Vote{UserID: userID, PostID: postID})
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	default:
		return nil, err
	}

	votes, err := s.voteRepo.CountForPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &VoteResult{Voted: voted, Votes: votes}, nil
}

func (s *feedbackService) findOwned(ctx context.Context, userID, postID int64) (*models.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, ErrNotPostAuthor
	}
	return post, nil
}

func (s *feedbackService) checkTaxonomy(ctx context.Context, input PostInput) error {
	ok, err := s.taxonomyRepo.CategoryExists(ctx, input.CategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	ok, err = s.taxonomyRepo.StatusExists(ctx, input.StatusID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrStatusNotFound
	}
	return nil
}
