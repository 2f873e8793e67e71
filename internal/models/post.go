package models

import "time"

// Post is a feedback item. Votes is populated from a counting subquery on
// reads and is never written; HasVoted is filled in by the service layer for
// authenticated list/detail requests.
type Post struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	AuthorID    int64     `json:"author_id" gorm:"not null;index"`
	CategoryID  int64     `json:"category_id" gorm:"not null;index"`
	StatusID    int64     `json:"status_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Author   User     `json:"author" gorm:"foreignKey:AuthorID"`
	Category Category `json:"category" gorm:"foreignKey:CategoryID"`
	Status   Status   `json:"status" gorm:"foreignKey:StatusID"`

	Votes    int64 `json:"votes" gorm:"->;-:migration"`
	HasVoted bool  `json:"hasVoted" gorm:"-"`
}

// TableName returns the database table name for the Post model.
func (Post) TableName() string {
	return "posts"
}
