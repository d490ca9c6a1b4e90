package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nested-comments/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository implements every repository interface on top of one
// MongoDB database with the collections users, posts, comments and likes.
type MongoRepository struct {
	users    *mongo.Collection
	posts    *mongo.Collection
	comments *mongo.Collection
	likes    *mongo.Collection
}

// NewMongoRepository creates a new MongoRepository
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		users:    db.Collection("users"),
		posts:    db.Collection("posts"),
		comments: db.Collection("comments"),
		likes:    db.Collection("likes"),
	}
}

// NewMongoStore builds a Store backed by MongoDB and makes sure its indexes exist
func NewMongoStore(ctx context.Context, db *mongo.Database) (*Store, error) {
	r := NewMongoRepository(db)
	if err := r.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return &Store{Users: r, Posts: r, Comments: r, Likes: r}, nil
}

// EnsureIndexes creates the unique like index and the lookup indexes
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.likes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "comment_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating like index: %w", err)
	}
	_, err = r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating user index: %w", err)
	}
	_, err = r.comments.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "comment_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("creating comment indexes: %w", err)
	}
	return nil
}

func mongoNotFound(err error, format string, args ...any) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
	}
	return err
}

// CreateUser creates a new user in MongoDB
func (r *MongoRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	_, err := r.users.InsertOne(ctx, user)
	return err
}

// GetUserByID retrieves a user by ID from MongoDB
func (r *MongoRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, mongoNotFound(err, "user %s", id)
	}
	return &user, nil
}

// GetUserByName retrieves a user by name from MongoDB
func (r *MongoRepository) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	if err := r.users.FindOne(ctx, bson.M{"name": name}).Decode(&user); err != nil {
		return nil, mongoNotFound(err, "user named %q", name)
	}
	return &user, nil
}

// CountUsers returns the number of stored users
func (r *MongoRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.users.CountDocuments(ctx, bson.M{})
}

// CreatePost creates a new post in MongoDB
func (r *MongoRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now
	_, err := r.posts.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, mongoNotFound(err, "post %s", id)
	}
	return &post, nil
}

// GetAllPosts retrieves id and title of every post, oldest first
func (r *MongoRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	findOptions := options.Find().
		SetProjection(bson.M{"title": 1, "created_at": 1}).
		SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.posts.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreateComment inserts a comment after checking the references a SQL
// schema would enforce with foreign keys.
func (r *MongoRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if _, err := r.GetPostByID(ctx, comment.PostID); err != nil {
		return err
	}
	user, err := r.GetUserByID(ctx, comment.UserID)
	if err != nil {
		return err
	}
	if comment.CommentID != nil {
		err := r.comments.FindOne(ctx, bson.M{"_id": *comment.CommentID}).Err()
		if err != nil {
			return mongoNotFound(err, "parent comment %s", *comment.CommentID)
		}
	}

	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	now := time.Now()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = now
	if _, err := r.comments.InsertOne(ctx, comment); err != nil {
		return err
	}
	comment.User = *user
	return nil
}

// GetCommentByID retrieves a comment and its author from MongoDB
func (r *MongoRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.comments.FindOne(ctx, bson.M{"_id": id}).Decode(&comment); err != nil {
		return nil, mongoNotFound(err, "comment %s", id)
	}
	user, err := r.GetUserByID(ctx, comment.UserID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if user != nil {
		comment.User = *user
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves the comments of a post, newest first, and
// attaches their authors with a single users query.
func (r *MongoRepository) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.comments.Find(ctx, bson.M{"post_id": postID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return comments, nil
	}

	userIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		userIDs = append(userIDs, c.UserID)
	}
	userCursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, err
	}
	defer userCursor.Close(ctx)

	var users []models.User
	if err = userCursor.All(ctx, &users); err != nil {
		return nil, err
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for i := range comments {
		comments[i].User = byID[comments[i].UserID]
	}
	return comments, nil
}

// UpdateCommentMessage replaces the message of a comment
func (r *MongoRepository) UpdateCommentMessage(ctx context.Context, id, message string) (*models.Comment, error) {
	res, err := r.comments.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"message": message, "updated_at": time.Now()}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	return r.GetCommentByID(ctx, id)
}

// DeleteComment removes a comment, all replies below it and their likes
func (r *MongoRepository) DeleteComment(ctx context.Context, id string) error {
	res, err := r.comments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}

	doomed := []string{id}
	for frontier := []string{id}; len(frontier) > 0; {
		cursor, err := r.comments.Find(ctx,
			bson.M{"comment_id": bson.M{"$in": frontier}},
			options.Find().SetProjection(bson.M{"_id": 1}),
		)
		if err != nil {
			return err
		}
		var replies []struct {
			ID string `bson:"_id"`
		}
		if err := cursor.All(ctx, &replies); err != nil {
			return err
		}
		frontier = nil
		for _, reply := range replies {
			frontier = append(frontier, reply.ID)
		}
		doomed = append(doomed, frontier...)
	}

	if len(doomed) > 1 {
		if _, err := r.comments.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": doomed[1:]}}); err != nil {
			return err
		}
	}
	_, err = r.likes.DeleteMany(ctx, bson.M{"comment_id": bson.M{"$in": doomed}})
	return err
}

// ToggleLike deletes the like if present and otherwise inserts it. The
// unique (user_id, comment_id) index turns a lost race into ErrLikeConflict.
func (r *MongoRepository) ToggleLike(ctx context.Context, userID, commentID string) (bool, error) {
	filter := bson.M{"user_id": userID, "comment_id": commentID}
	res, err := r.likes.DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}
	if res.DeletedCount > 0 {
		return false, nil
	}

	like := models.Like{UserID: userID, CommentID: commentID, CreatedAt: time.Now()}
	if _, err := r.likes.InsertOne(ctx, like); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, ErrLikeConflict
		}
		return false, err
	}
	return true, nil
}

// CountLikesByCommentIDs groups the likes of the given comments by comment
func (r *MongoRepository) CountLikesByCommentIDs(ctx context.Context, commentIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"comment_id": bson.M{"$in": commentIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$comment_id", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.likes.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		CommentID string `bson:"_id"`
		Count     int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	for _, res := range results {
		counts[res.CommentID] = res.Count
	}
	return counts, nil
}

// GetLikedCommentIDs returns which of the given comments the user has liked
func (r *MongoRepository) GetLikedCommentIDs(ctx context.Context, userID string, commentIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool)
	if len(commentIDs) == 0 {
		return liked, nil
	}

	cursor, err := r.likes.Find(ctx, bson.M{"user_id": userID, "comment_id": bson.M{"$in": commentIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var likes []models.Like
	if err := cursor.All(ctx, &likes); err != nil {
		return nil, err
	}
	for _, like := range likes {
		liked[like.CommentID] = true
	}
	return liked, nil
}
