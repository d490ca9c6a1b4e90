package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nested-comments/backend/internal/middleware"
	"github.com/nested-comments/backend/internal/models"
	"github.com/nested-comments/backend/internal/repositories"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
	likeRepository    repositories.LikeRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, likeRepo repositories.LikeRepository) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		commentRepository: commentRepo,
		likeRepository:    likeRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:postId", h.GetPost)
}

// ListPosts returns the id and title of every post
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return storeError(err, msgPostNotFound)
	}

	summaries := make([]models.PostSummary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, models.PostSummary{ID: p.ID, Title: p.Title})
	}
	return c.JSON(http.StatusOK, summaries)
}

// GetPost returns a post with its comments, newest first. Each comment
// carries its like count and whether the caller liked it.
func (h *PostHandler) GetPost(c echo.Context) error {
	ctx := c.Request().Context()
	postID := c.Param("postId")
	if !validID(postID) {
		return echo.NewHTTPError(http.StatusNotFound, msgPostNotFound)
	}

	post, err := h.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return storeError(err, msgPostNotFound)
	}

	comments, err := h.commentRepository.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return storeError(err, msgPostNotFound)
	}

	commentIDs := make([]string, 0, len(comments))
	for _, cm := range comments {
		commentIDs = append(commentIDs, cm.ID)
	}

	counts, err := h.likeRepository.CountLikesByCommentIDs(ctx, commentIDs)
	if err != nil {
		return storeError(err, msgPostNotFound)
	}
	liked, err := h.likeRepository.GetLikedCommentIDs(ctx, middleware.UserID(c), commentIDs)
	if err != nil {
		return storeError(err, msgPostNotFound)
	}

	resp := models.PostResponse{
		Title:    post.Title,
		Body:     post.Body,
		Comments: make([]models.CommentResponse, 0, len(comments)),
	}
	for _, cm := range comments {
		resp.Comments = append(resp.Comments, models.NewCommentResponse(cm, counts[cm.ID], liked[cm.ID]))
	}
	return c.JSON(http.StatusOK, resp)
}
