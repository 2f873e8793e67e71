package models

import "time"

// Vote records that a user endorsed a post. The combination of UserID and
// PostID is unique; the index doubles as the concurrency control for the
// toggle operation.
type Vote struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_votes_user_post"`
	PostID    int64     `json:"post_id" gorm:"not null;uniqueIndex:idx_votes_user_post"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for the Vote model.
func (Vote) TableName() string {
	return "votes"
}
