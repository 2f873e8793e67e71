package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Shelkonty/feedback-whole/internal/models"
	"github.com/Shelkonty/feedback-whole/internal/repository"
)

// newTestDB opens an isolated in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Category{}, &models.Status{}, &models.Post{}, &models.Vote{})
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

type feedbackFixture struct {
	service  FeedbackService
	db       *gorm.DB
	userA    models.User
	userB    models.User
	category models.Category
	status   models.Status
}

func newFeedbackFixture(t *testing.T) *feedbackFixture {
	t.Helper()
	db := newTestDB(t)

	f := &feedbackFixture{
		db:       db,
		userA:    models.User{Email: "a@x.com", PasswordHash: "hash"},
		userB:    models.User{Email: "b@x.com", PasswordHash: "hash"},
		category: models.Category{Name: "Feature"},
		status:   models.Status{Name: "Idea"},
	}
	for _, record := range []interface{}{&f.userA, &f.userB, &f.category, &f.status} {
		if err := db.Create(record).Error; err != nil {
			t.Fatalf("failed to seed fixture: %v", err)
		}
	}

	f.service = NewFeedbackService(
		repository.NewPostRepository(db),
		repository.NewVoteRepository(db),
		repository.NewTaxonomyRepository(db),
	)
	return f
}

func (f *feedbackFixture) input(title string) PostInput {
	return PostInput{
		Title:       title,
		Description: "some description",
		CategoryID:  f.category.ID,
		StatusID:    f.status.ID,
	}
}

// =============================================================================
// Create Tests
// =============================================================================

func TestFeedbackCreate(t *testing.T) {
	f := newFeedbackFixture(t)

	post, err := f.service.Create(context.Background(), f.userA.ID, f.input("Add dark mode"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if post.Title != "Add dark mode" {
		t.Errorf("Create() title = %q", post.Title)
	}
	if post.Author.Email != "a@x.com" {
		t.Errorf("Create() author not hydrated: %+v", post.Author)
	}
	if post.Category.Name != "Feature" || post.Status.Name != "Idea" {
		t.Errorf("Create() taxonomy not hydrated: %+v %+v", post.Category, post.Status)
	}
	if post.Votes != 0 {
		t.Errorf("Create() votes = %d, want 0", post.Votes)
	}
}

func TestFeedbackCreate_UnknownTaxonomy(t *testing.T) {
	f := newFeedbackFixture(t)

	badCategory := f.input("x")
	badCategory.CategoryID = 999
	if _, err := f.service.Create(context.Background(), f.userA.ID, badCategory); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("Create() error = %v, want ErrCategoryNotFound", err)
	}

	badStatus := f.input("x")
	badStatus.StatusID = 999
	if _, err := f.service.Create(context.Background(), f.userA.ID, badStatus); !errors.Is(err, ErrStatusNotFound) {
		t.Errorf("Create() error = %v, want ErrStatusNotFound", err)
	}
}

// =============================================================================
// Ownership Tests
// =============================================================================

func TestFeedbackUpdate_NotAuthor(t *testing.T) {
	f := newFeedbackFixture(t)
	ctx := context.Background()

	post, err := f.service.Create(ctx, f.userA.ID, f.input("original title"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = f.service.Update(ctx, f.userB.ID, post.ID, f.input("hijacked"))
	if !errors.Is(err, ErrNotPostAuthor) {
		t.Errorf("Update() error = %v, want ErrNotPostAuthor", err)
	}

	// The post must be unchanged.
	var stored models.Post
	if err := f.db.First(&stored, post.ID).Error; err != nil {
		t.Fatalf("failed to reload post: %v", err)
	}
	if stored.Title != "original title" {
		t.Errorf("post title = %q after rejected update", stored.Title)
	}
}

func TestFeedbackUpdate_FullReplace(t *testing.T) {
	f := newFeedbackFixture(t)
	ctx := context.Background()

	post, err := f.service.Create(ctx, f.userA.ID, f.input("before"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := f.service.Update(ctx, f.userA.ID, post.ID, PostInput{
		Title:       "after",
		Description: "new description",
		CategoryID:  f.category.ID,
		StatusID:    f.status.ID,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "after" || updated.Description != "new description" {
		t.Errorf("Update() = %q / %q", updated.Title, updated.Description)
	}
}

func TestFeedbackUpdate_NotFound(t *testing.T) {
	f := newFeedbackFixture(t)

	_, err := f.service.Update(context.Background(), f.userA.ID, 12345, f.input("x"))
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("Update() error = %v, want ErrPostNotFound", err)
	}
}

func TestFeedbackDelete(t *testing.T) {
	f := newFeedbackFixture(t)
	ctx := context.Background()

	post, err := f.service.Create(ctx, f.userA.ID, f.input("doomed"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := f.service.ToggleVote(ctx, f.userB.ID, post.ID); err != nil {
		t.Fatalf("ToggleVote() error = %v", err)
	}

	if err := f.service.Delete(ctx, f.userB.ID, post.ID); !errors.Is(err, ErrNotPostAuthor) {
		t.Errorf("Delete() by non-author error = %v, want ErrNotPostAuthor", err)
	}
	if err := f.service.Delete(ctx, f.userA.ID, post.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var votes int64
	f.db.Model(&models.Vote{}).Where("post_id = ?", post.ID).Count(&votes)
	if votes != 0 {
		t.Errorf("votes remaining after post delete = %d", votes)
	}
}

// =============================================================================
// Vote Toggle Tests
// =============================================================================

func TestToggleVote_Involutive(t *testing.T) {
	f := newFeedbackFixture(t)
	ctx := context.Background()

	post, err := f.service.Create(ctx, f.userA.ID, f.input("Add dark mode"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// A votes: count 1, voted.
	result, err := f.service.ToggleVote(ctx, f.userA.ID, post.ID)
	if err != nil {
		t.Fatalf("ToggleVote() error = %v", err)
	}
	if !result.Voted || result.Votes != 1 {
		t.Errorf("first toggle = %+v, want voted with 1 vote", result)
	}

	list := f.listFor(t, &f.userA.ID)
	if len(list.Posts) != 1 || !list.Posts[0].HasVoted || list.Posts[0].Votes != 1 {
		t.Errorf("list after vote = %+v", list.Posts)
	}

	// A votes again: back to zero.
	result, err = f.service.ToggleVote(ctx, f.userA.ID, post.ID)
	if err != nil {
		t.Fatalf("ToggleVote() error = %v", err)
	}
	if result.Voted || result.Votes != 0 {
		t.Errorf("second toggle = %+v, want unvoted with 0 votes", result)
	}

	// B votes: count 1, hasVoted false for A, true for B.
	if _, err := f.service.ToggleVote(ctx, f.userB.ID, post.ID); err != nil {
		t.Fatalf("ToggleVote() error = %v", err)
	}
	listA := f.listFor(t, &f.userA.ID)
	if listA.Posts[0].Votes != 1 || listA.Posts[0].HasVoted {
		t.Errorf("A sees %+v, want 1 vote not own", listA.Posts[0])
	}
	listB := f.listFor(t, &f.userB.ID)
	if listB.Posts[0].Votes != 1 || !listB.Posts[0].HasVoted {
		t.Errorf("B sees %+v, want 1 own vote", listB.Posts[0])
	}
}

func TestToggleVote_PostNotFound(t *testing.T) {
	f := newFeedbackFixture(t)

	_, err := f.service.ToggleVote(context.Background(), f.userA.ID, 12345)
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("ToggleVote() error = %v, want ErrPostNotFound", err)
	}
}

func (f *feedbackFixture) listFor(t *testing.T, userID *int64) *FeedbackList {
	t.Helper()
	list, err := f.service.List(context.Background(), ListParams{UserID: userID})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	return list
}

// =============================================================================
// List Tests
// =============================================================================

func TestList_Pagination(t *testing.T) {
	f := newFeedbackFixture(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		if _, err := f.service.Create(ctx, f.userA.ID, f.input(fmt.Sprintf("post %02d", i))); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	page1, err := f.service.List(ctx, ListParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page1.Posts) != 10 {
		t.Errorf("page 1 has %d posts, want 10", len(page1.Posts))
	}
	want := Pagination{Total: 15, Pages: 2, CurrentPage: 1}
	if page1.Pagination != want {
		t.Errorf("pagination = %+v, want %+v", page1.Pagination, want)
	}

	page2, err := f.service.List(ctx, ListParams{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page2.Posts) != 5 {
		t.Errorf("page 2 has %d posts, want 5", len(page2.Posts))
	}
	if page2.Pagination.CurrentPage != 2 {
		t.Errorf("page 2 currentPage = %d", page2.Pagination.CurrentPage)
	}
}

func TestList_Defaults(t *testing.T) {
	f := newFeedbackFixture(t)

	list, err := f.service.List(context.Background(), ListParams{Page: -3, Limit: 0})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if list.Pagination.CurrentPage != 1 {
		t.Errorf("currentPage = %d, want 1 after normalization", list.Pagination.CurrentPage)
	}
	if list.Posts == nil {
		t.Error("List() posts should be an empty slice, not nil")
	}
}

func TestList_SortByVotes(t *testing.T) {
	f := newFeedbackFixture(t)
	ctx := context.Background()

	low, _ := f.service.Create(ctx, f.userA.ID, f.input("low"))
	high, _ := f.service.Create(ctx, f.userA.ID, f.input("high"))
	mid, _ := f.service.Create(ctx, f.userA.ID, f.input("mid"))

	for _, userID := range []int64{f.userA.ID, f.userB.ID} {
		if _, err := f.service.ToggleVote(ctx, userID, high.ID); err != nil {
			t.Fatalf("ToggleVote() error = %v", err)
		}
	}
	if _, err := f.service.ToggleVote(ctx, f.userA.ID, mid.ID); err != nil {
		t.Fatalf("ToggleVote() error = %v", err)
	}

	list, err := f.service.List(ctx, ListParams{SortBy: SortByVotes})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	gotOrder := [3]int64{list.Posts[0].ID, list.Posts[1].ID, list.Posts[2].ID}
	wantOrder := [3]int64{high.ID, mid.ID, low.ID}
	if gotOrder != wantOrder {
		t.Errorf("vote-sorted order = %v, want %v", gotOrder, wantOrder)
	}
	for i := 1; i < len(list.Posts); i++ {
		if list.Posts[i].Votes > list.Posts[i-1].Votes {
			t.Errorf("votes not non-increasing at index %d", i)
		}
	}
}

func TestList_DefaultSortMostRecent(t *testing.T) {
	f := newFeedbackFixture(t)
	ctx := context.Background()

	first, _ := f.service.Create(ctx, f.userA.ID, f.input("first"))
	// Distinct timestamps so recency ordering is observable.
	f.db.Model(&models.Post{}).Where("id = ?", first.ID).
		Update("created_at", time.Now().Add(-time.Hour))
	second, _ := f.service.Create(ctx, f.userA.ID, f.input("second"))

	list, err := f.service.List(ctx, ListParams{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if list.Posts[0].ID != second.ID || list.Posts[1].ID != first.ID {
		t.Errorf("recency order = [%d %d], want [%d %d]",
			list.Posts[0].ID, list.Posts[1].ID, second.ID, first.ID)
	}
}

func TestList_Filters(t *testing.T) {
	f := newFeedbackFixture(t)
	ctx := context.Background()

	other := models.Category{Name: "Bug"}
	if err := f.db.Create(&other).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	if _, err := f.service.Create(ctx, f.userA.ID, f.input("feature post")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	bugInput := f.input("bug post")
	bugInput.CategoryID = other.ID
	if _, err := f.service.Create(ctx, f.userA.ID, bugInput); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	list, err := f.service.List(ctx, ListParams{CategoryID: &other.ID})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list.Posts) != 1 || list.Posts[0].Title != "bug post" {
		t.Errorf("filtered list = %+v, want only the bug post", list.Posts)
	}
	if list.Pagination.Total != 1 {
		t.Errorf("filtered total = %d, want 1", list.Pagination.Total)
	}
}
