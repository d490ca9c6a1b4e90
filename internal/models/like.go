package models

import "time"

// Like represents a user's like on a comment. The (UserID, CommentID) pair is
// the primary key, so a user likes a comment at most once.
type Like struct {
	UserID    string    `json:"user_id" gorm:"type:uuid;primaryKey" bson:"user_id"`
	CommentID string    `json:"comment_id" gorm:"type:uuid;primaryKey;index" bson:"comment_id"`
	User      *User     `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" bson:"-"`
	Comment   *Comment  `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" bson:"-"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ToggleLikeResponse reports whether a toggle added or removed the like
type ToggleLikeResponse struct {
	AddLike bool `json:"addLike"`
}
