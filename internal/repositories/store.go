package repositories

import "gorm.io/gorm"

// Store groups the repositories of one backend so handlers can be wired
// without knowing which database sits behind them.
type Store struct {
	Users    UserRepository
	Posts    PostRepository
	Comments CommentRepository
	Likes    LikeRepository
}

// NewPostgresStore builds a Store on top of a gorm connection
func NewPostgresStore(db *gorm.DB) *Store {
	return &Store{
		Users:    NewPostgresUserRepository(db),
		Posts:    NewPostgresPostRepository(db),
		Comments: NewPostgresCommentRepository(db),
		Likes:    NewPostgresLikeRepository(db),
	}
}

// NewMemoryStore builds a Store backed by a single MemoryStorage
func NewMemoryStore() *Store {
	m := NewMemoryStorage()
	return &Store{
		Users:    m,
		Posts:    m,
		Comments: m,
		Likes:    m,
	}
}
