package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nested-comments/backend/internal/middleware"
	"github.com/nested-comments/backend/internal/models"
	"github.com/nested-comments/backend/internal/repositories"
)

// CommentHandler handles HTTP requests related to comments and their likes
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	likeRepository    repositories.LikeRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, likeRepo repositories.LikeRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		likeRepository:    likeRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:postId/comments", h.CreateComment)
	g.PUT("/posts/:postId/comments/:commentId", h.UpdateComment)
	g.DELETE("/posts/:postId/comments/:commentId", h.DeleteComment)
	g.POST("/posts/:postId/comments/:commentId/toggleLike", h.ToggleCommentLike)
}

// CreateComment creates a comment, or a reply when comment_id is set
func (h *CommentHandler) CreateComment(c echo.Context) error {
	ctx := c.Request().Context()
	postID := c.Param("postId")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	if !validID(postID) {
		return echo.NewHTTPError(http.StatusNotFound, msgPostNotFound)
	}
	if _, err := h.postRepository.GetPostByID(ctx, postID); err != nil {
		return storeError(err, msgPostNotFound)
	}

	if req.CommentID != nil {
		parent, err := h.commentRepository.GetCommentByID(ctx, *req.CommentID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return echo.NewHTTPError(http.StatusUnprocessableEntity, msgParentNotFound)
			}
			return storeError(err, msgParentNotFound)
		}
		if parent.PostID != postID {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, msgParentNotFound)
		}
	}

	comment := &models.Comment{
		Message:   req.Message,
		PostID:    postID,
		CommentID: req.CommentID,
		UserID:    middleware.UserID(c),
	}
	if err := h.commentRepository.CreateComment(ctx, comment); err != nil {
		return storeError(err, msgPostNotFound)
	}

	return c.JSON(http.StatusOK, models.NewCommentResponse(*comment, 0, false))
}

// UpdateComment replaces the message of a comment owned by the caller
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	comment, err := h.commentOfPost(c)
	if err != nil {
		return err
	}

	// Ensure the user updating the comment is the owner
	if comment.UserID != middleware.UserID(c) {
		return echo.NewHTTPError(http.StatusUnauthorized, "You do not have permission to edit this message.")
	}

	updated, err := h.commentRepository.UpdateCommentMessage(c.Request().Context(), comment.ID, req.Message)
	if err != nil {
		return storeError(err, msgCommentNotFound)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": updated.Message})
}

// DeleteComment deletes a comment owned by the caller
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	comment, err := h.commentOfPost(c)
	if err != nil {
		return err
	}

	// Ensure the user deleting the comment is the owner
	if comment.UserID != middleware.UserID(c) {
		return echo.NewHTTPError(http.StatusUnauthorized, "You do not have permission to delete this message.")
	}

	if err := h.commentRepository.DeleteComment(c.Request().Context(), comment.ID); err != nil {
		return storeError(err, msgCommentNotFound)
	}

	return c.JSON(http.StatusOK, echo.Map{"id": comment.ID})
}

// ToggleCommentLike likes the comment for the caller, or removes the like
// when it already exists.
func (h *CommentHandler) ToggleCommentLike(c echo.Context) error {
	comment, err := h.commentOfPost(c)
	if err != nil {
		return err
	}

	added, err := h.likeRepository.ToggleLike(c.Request().Context(), middleware.UserID(c), comment.ID)
	if err != nil {
		return storeError(err, msgCommentNotFound)
	}

	return c.JSON(http.StatusOK, models.ToggleLikeResponse{AddLike: added})
}

// commentOfPost loads the comment named in the path and checks that it
// belongs to the post named in the path.
func (h *CommentHandler) commentOfPost(c echo.Context) (*models.Comment, error) {
	postID, commentID := c.Param("postId"), c.Param("commentId")
	if !validID(commentID) {
		return nil, echo.NewHTTPError(http.StatusNotFound, msgCommentNotFound)
	}

	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), commentID)
	if err != nil {
		return nil, storeError(err, msgCommentNotFound)
	}
	if comment.PostID != postID {
		return nil, echo.NewHTTPError(http.StatusNotFound, msgCommentNotFound)
	}
	return comment, nil
}
