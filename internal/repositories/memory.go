package repositories

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nested-comments/backend/internal/models"
)

type likeKey struct {
	userID    string
	commentID string
}

// MemoryStorage keeps users, posts, comments and likes in maps. It
// implements every repository interface and is used for local runs and
// tests.
type MemoryStorage struct {
	mu       sync.RWMutex
	users    map[string]models.User
	posts    map[string]models.Post
	comments map[string]models.Comment
	likes    map[likeKey]models.Like
	now      func() time.Time
}

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:    make(map[string]models.User),
		posts:    make(map[string]models.Post),
		comments: make(map[string]models.Comment),
		likes:    make(map[likeKey]models.Like),
		now:      time.Now,
	}
}

// CreateUser stores a new user
func (s *MemoryStorage) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	for _, u := range s.users {
		if u.Name == user.Name {
			return fmt.Errorf("user named %q already exists", user.Name)
		}
	}
	now := s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = *user
	return nil
}

// GetUserByID returns a user by ID
func (s *MemoryStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return &user, nil
}

// GetUserByName returns a user by name
func (s *MemoryStorage) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Name == name {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user named %q: %w", name, ErrNotFound)
}

// CountUsers returns the number of stored users
func (s *MemoryStorage) CountUsers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

// CreatePost stores a new post
func (s *MemoryStorage) CreatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	now := s.now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now
	s.posts[post.ID] = *post
	return nil
}

// GetPostByID returns a post by ID
func (s *MemoryStorage) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, ErrNotFound)
	}
	return &post, nil
}

// GetAllPosts returns every post, oldest first
func (s *MemoryStorage) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.Before(posts[j].CreatedAt)
	})
	return posts, nil
}

// CreateComment stores a new comment. Like the foreign keys of the SQL
// schema it rejects unknown posts, users and parents.
func (s *MemoryStorage) CreateComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[comment.PostID]; !ok {
		return fmt.Errorf("post %s: %w", comment.PostID, ErrNotFound)
	}
	user, ok := s.users[comment.UserID]
	if !ok {
		return fmt.Errorf("user %s: %w", comment.UserID, ErrNotFound)
	}
	if comment.CommentID != nil {
		if _, ok := s.comments[*comment.CommentID]; !ok {
			return fmt.Errorf("parent comment %s: %w", *comment.CommentID, ErrNotFound)
		}
	}

	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	now := s.now()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = now
	comment.User = user
	s.comments[comment.ID] = *comment
	return nil
}

// GetCommentByID returns a comment by ID
func (s *MemoryStorage) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, ok := s.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	comment.User = s.users[comment.UserID]
	return &comment, nil
}

// GetCommentsByPostID returns the comments of a post, newest first
func (s *MemoryStorage) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]models.Comment, 0)
	for _, c := range s.comments {
		if c.PostID == postID {
			c.User = s.users[c.UserID]
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

// UpdateCommentMessage replaces the message of a comment
func (s *MemoryStorage) UpdateCommentMessage(ctx context.Context, id, message string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, ok := s.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	comment.Message = message
	comment.UpdatedAt = s.now()
	s.comments[id] = comment

	comment.User = s.users[comment.UserID]
	return &comment, nil
}

// DeleteComment removes a comment together with its replies and their likes
func (s *MemoryStorage) DeleteComment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}

	doomed := map[string]bool{id: true}
	for frontier := []string{id}; len(frontier) > 0; {
		var next []string
		for cid, c := range s.comments {
			if c.CommentID != nil && !doomed[cid] && slices.Contains(frontier, *c.CommentID) {
				doomed[cid] = true
				next = append(next, cid)
			}
		}
		frontier = next
	}

	for cid := range doomed {
		delete(s.comments, cid)
	}
	for key := range s.likes {
		if doomed[key.commentID] {
			delete(s.likes, key)
		}
	}
	return nil
}

// ToggleLike adds or removes the user's like under the write lock, so it
// never reports ErrLikeConflict.
func (s *MemoryStorage) ToggleLike(ctx context.Context, userID, commentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{userID: userID, commentID: commentID}
	if _, ok := s.likes[key]; ok {
		delete(s.likes, key)
		return false, nil
	}
	if _, ok := s.comments[commentID]; !ok {
		return false, fmt.Errorf("comment %s: %w", commentID, ErrNotFound)
	}
	s.likes[key] = models.Like{UserID: userID, CommentID: commentID, CreatedAt: s.now()}
	return true, nil
}

// CountLikesByCommentIDs returns the like count per comment
func (s *MemoryStorage) CountLikesByCommentIDs(ctx context.Context, commentIDs []string) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64, len(commentIDs))
	for key := range s.likes {
		if slices.Contains(commentIDs, key.commentID) {
			counts[key.commentID]++
		}
	}
	return counts, nil
}

// GetLikedCommentIDs returns which of the given comments the user has liked
func (s *MemoryStorage) GetLikedCommentIDs(ctx context.Context, userID string, commentIDs []string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	liked := make(map[string]bool)
	for _, id := range commentIDs {
		if _, ok := s.likes[likeKey{userID: userID, commentID: id}]; ok {
			liked[id] = true
		}
	}
	return liked, nil
}
