package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a comment on a post. CommentID points at the parent
// comment when the comment is a reply.
type Comment struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey" bson:"_id"`
	Message   string    `json:"message" gorm:"type:text;not null" bson:"message"`
	PostID    string    `json:"post_id" gorm:"type:uuid;not null;index" bson:"post_id"`
	Post      *Post     `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" bson:"-"`
	CommentID *string   `json:"comment_id" gorm:"type:uuid;index" bson:"comment_id"`
	Parent    *Comment  `json:"-" gorm:"foreignKey:CommentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" bson:"-"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index" bson:"user_id"`
	User      User      `json:"user" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" bson:"-"`
	CreatedAt time.Time `json:"created_at" gorm:"index" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller did not pick one
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Message   string  `json:"message" validate:"required"`
	CommentID *string `json:"comment_id" validate:"omitempty,uuid"`
}

// UpdateCommentRequest defines the request body for editing a comment
type UpdateCommentRequest struct {
	Message string `json:"message" validate:"required"`
}

// CommentAuthor is the public part of a user shown next to a comment
type CommentAuthor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CommentResponse is a comment as rendered in a post thread
type CommentResponse struct {
	ID        string        `json:"id"`
	Message   string        `json:"message"`
	CommentID *string       `json:"comment_id"`
	CreatedAt time.Time     `json:"created_at"`
	User      CommentAuthor `json:"user"`
	LikedByMe bool          `json:"likedByMe"`
	LikeCount int64         `json:"likeCount"`
}

// NewCommentResponse shapes a stored comment for the API
func NewCommentResponse(c Comment, likeCount int64, likedByMe bool) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Message:   c.Message,
		CommentID: c.CommentID,
		CreatedAt: c.CreatedAt,
		User:      CommentAuthor{ID: c.User.ID, Name: c.User.Name},
		LikedByMe: likedByMe,
		LikeCount: likeCount,
	}
}
