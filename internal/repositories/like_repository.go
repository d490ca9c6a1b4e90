package repositories

import (
	"context"

	"github.com/nested-comments/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for comment like operations
type LikeRepository interface {
	// ToggleLike removes the user's like on a comment when it exists and
	// adds it otherwise. It reports true when a like was added.
	ToggleLike(ctx context.Context, userID, commentID string) (bool, error)
	CountLikesByCommentIDs(ctx context.Context, commentIDs []string) (map[string]int64, error)
	GetLikedCommentIDs(ctx context.Context, userID string, commentIDs []string) (map[string]bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// ToggleLike never reads before writing: the delete and the conflict-free
// insert are each decided by the (user_id, comment_id) primary key.
func (r *PostgresLikeRepository) ToggleLike(ctx context.Context, userID, commentID string) (bool, error) {
	db := r.db.WithContext(ctx)

	res := db.Where("user_id = ? AND comment_id = ?", userID, commentID).Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	like := models.Like{UserID: userID, CommentID: commentID}
	res = db.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&like)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, ErrLikeConflict
	}
	return true, nil
}

// CountLikesByCommentIDs returns the like count per comment. Comments without
// likes are absent from the map.
func (r *PostgresLikeRepository) CountLikesByCommentIDs(ctx context.Context, commentIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}

	type countResult struct {
		CommentID string
		Count     int64
	}
	var results []countResult
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("comment_id, COUNT(*) AS count").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	for _, res := range results {
		counts[res.CommentID] = res.Count
	}
	return counts, nil
}

// GetLikedCommentIDs returns which of the given comments the user has liked
func (r *PostgresLikeRepository) GetLikedCommentIDs(ctx context.Context, userID string, commentIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool)
	if len(commentIDs) == 0 {
		return liked, nil
	}

	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Pluck("comment_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
