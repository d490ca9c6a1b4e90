package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a seeded commenter. Users are read-only once created.
type User struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey" bson:"_id"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex" bson:"name"`
	CreatedAt time.Time `json:"-" bson:"created_at"`
	UpdatedAt time.Time `json:"-" bson:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller did not pick one
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// SessionClaims are the claims carried by the signed user_id cookie
type SessionClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
