package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Comment is a comment as returned by the API
type Comment struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CommentID *string   `json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `json:"user"`
	LikedByMe bool      `json:"likedByMe"`
	LikeCount int64     `json:"likeCount"`
}

type CreateCommentParams struct {
	PostID  string
	Message string
	// CommentID is the parent comment when replying
	CommentID *string
}

type UpdateCommentParams struct {
	PostID  string
	ID      string
	Message string
}

type DeleteCommentParams struct {
	PostID string
	ID     string
}

type ToggleCommentLikeParams struct {
	PostID string
	ID     string
}

func commentPath(postID string, parts ...string) string {
	p := "/posts/" + url.PathEscape(postID) + "/comments"
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

// CreateComment posts a new comment or reply
func (c *Client) CreateComment(ctx context.Context, p CreateCommentParams) (*Comment, error) {
	body := struct {
		Message   string  `json:"message"`
		CommentID *string `json:"comment_id,omitempty"`
	}{Message: p.Message, CommentID: p.CommentID}

	var comment Comment
	if err := c.request(ctx, http.MethodPost, commentPath(p.PostID), body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment edits a comment's message and returns the stored message
func (c *Client) UpdateComment(ctx context.Context, p UpdateCommentParams) (string, error) {
	body := struct {
		Message string `json:"message"`
	}{Message: p.Message}

	var resp struct {
		Message string `json:"message"`
	}
	if err := c.request(ctx, http.MethodPut, commentPath(p.PostID, p.ID), body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// DeleteComment deletes a comment and returns its id
func (c *Client) DeleteComment(ctx context.Context, p DeleteCommentParams) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.request(ctx, http.MethodDelete, commentPath(p.PostID, p.ID), nil, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// ToggleCommentLike flips the caller's like and reports whether it was added
func (c *Client) ToggleCommentLike(ctx context.Context, p ToggleCommentLikeParams) (bool, error) {
	var resp struct {
		AddLike bool `json:"addLike"`
	}
	if err := c.request(ctx, http.MethodPost, commentPath(p.PostID, p.ID, "toggleLike"), nil, &resp); err != nil {
		return false, err
	}
	return resp.AddLike, nil
}
