package client

import (
	"context"
	"net/http"
	"net/url"
)

// PostSummary is an entry of the post list
type PostSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Post is a post with its comment thread, newest comment first
type Post struct {
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Comments []Comment `json:"comments"`
}

// GetPosts lists all posts
func (c *Client) GetPosts(ctx context.Context) ([]PostSummary, error) {
	var posts []PostSummary
	if err := c.request(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost fetches one post with its comments
func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	var post Post
	if err := c.request(ctx, http.MethodGet, "/posts/"+url.PathEscape(id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}
