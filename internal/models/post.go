package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a blog post that comments hang off
type Post struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey" bson:"_id"`
	Title     string    `json:"title" gorm:"not null" bson:"title"`
	Body      string    `json:"body" gorm:"type:text;not null" bson:"body"`
	CreatedAt time.Time `json:"-" gorm:"index" bson:"created_at"`
	UpdatedAt time.Time `json:"-" bson:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller did not pick one
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PostSummary is the list view of a post
type PostSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// PostResponse is a single post together with its comment thread
type PostResponse struct {
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Comments []CommentResponse `json:"comments"`
}
