package models

// Category classifies posts by topic. Seeded at startup, extendable via the
// API; never deleted while referenced.
type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

// TableName returns the database table name for the Category model.
func (Category) TableName() string {
	return "categories"
}

// Status is the workflow stage a post is in. Fixed reference data.
type Status struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

// TableName returns the database table name for the Status model.
func (Status) TableName() string {
	return "statuses"
}
