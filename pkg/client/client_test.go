package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/nested-comments/backend/internal/middleware"
	"github.com/nested-comments/backend/internal/repositories"
	"github.com/nested-comments/backend/internal/router"
	"github.com/nested-comments/backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "client-test-secret"

type testServer struct {
	srv   *httptest.Server
	store *repositories.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	require.NoError(t, repositories.Seed(ctx, store))
	demo, err := store.Users.GetUserByName(ctx, "Saifuddin")
	require.NoError(t, err)

	cfg := &config.Config{
		Env:          "test",
		ClientURL:    "http://localhost:3000",
		CookieSecret: testSecret,
		StoreDriver:  config.DriverMemory,
	}
	srv := httptest.NewServer(router.New(cfg, store, demo.ID))
	t.Cleanup(srv.Close)
	return &testServer{srv: srv, store: store}
}

// clientAs returns a client whose jar already holds a session for the named
// seeded user.
func (s *testServer) clientAs(t *testing.T, name string) *Client {
	t.Helper()
	user, err := s.store.Users.GetUserByName(context.Background(), name)
	require.NoError(t, err)
	token, err := middleware.SignUserID([]byte(testSecret), user.ID)
	require.NoError(t, err)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	u, err := url.Parse(s.srv.URL)
	require.NoError(t, err)
	jar.SetCookies(u, []*http.Cookie{{Name: middleware.CookieName, Value: token, Path: "/"}})

	c, err := New(s.srv.URL, WithHTTPClient(&http.Client{Jar: jar}))
	require.NoError(t, err)
	return c
}

func TestClient_CommentLifecycle(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	c, err := New(s.srv.URL + "/")
	require.NoError(t, err)

	posts, err := c.GetPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Post 1", posts[0].Title)
	postID := posts[0].ID

	created, err := c.CreateComment(ctx, CreateCommentParams{PostID: postID, Message: "first!"})
	require.NoError(t, err)
	assert.Equal(t, "first!", created.Message)
	assert.Equal(t, "Saifuddin", created.User.Name)
	assert.Zero(t, created.LikeCount)

	reply, err := c.CreateComment(ctx, CreateCommentParams{PostID: postID, Message: "reply", CommentID: &created.ID})
	require.NoError(t, err)
	require.NotNil(t, reply.CommentID)
	assert.Equal(t, created.ID, *reply.CommentID)

	added, err := c.ToggleCommentLike(ctx, ToggleCommentLikeParams{PostID: postID, ID: created.ID})
	require.NoError(t, err)
	assert.True(t, added)

	post, err := c.GetPost(ctx, postID)
	require.NoError(t, err)
	require.Len(t, post.Comments, 2)
	for _, cm := range post.Comments {
		if cm.ID == created.ID {
			assert.Equal(t, int64(1), cm.LikeCount)
			assert.True(t, cm.LikedByMe)
		}
	}

	added, err = c.ToggleCommentLike(ctx, ToggleCommentLikeParams{PostID: postID, ID: created.ID})
	require.NoError(t, err)
	assert.False(t, added)

	msg, err := c.UpdateComment(ctx, UpdateCommentParams{PostID: postID, ID: created.ID, Message: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", msg)

	id, err := c.DeleteComment(ctx, DeleteCommentParams{PostID: postID, ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)

	post, err = c.GetPost(ctx, postID)
	require.NoError(t, err)
	assert.Empty(t, post.Comments)
}

func TestClient_KeepsSessionCookie(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	c, err := New(s.srv.URL)
	require.NoError(t, err)

	posts, err := c.GetPosts(ctx)
	require.NoError(t, err)

	u, err := url.Parse(s.srv.URL)
	require.NoError(t, err)
	cookies := c.httpClient.Jar.Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.CookieName, cookies[0].Name)

	created, err := c.CreateComment(ctx, CreateCommentParams{PostID: posts[0].ID, Message: "mine"})
	require.NoError(t, err)
	_, err = c.UpdateComment(ctx, UpdateCommentParams{PostID: posts[0].ID, ID: created.ID, Message: "still mine"})
	assert.NoError(t, err)
}

func TestClient_APIErrors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	alice := s.clientAs(t, "Saifuddin")
	sally := s.clientAs(t, "Sally")

	posts, err := alice.GetPosts(ctx)
	require.NoError(t, err)
	postID := posts[0].ID
	created, err := alice.CreateComment(ctx, CreateCommentParams{PostID: postID, Message: "alice's"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		call       func() error
		wantStatus int
		wantMsg    string
	}{
		{
			name: "empty message",
			call: func() error {
				_, err := alice.CreateComment(ctx, CreateCommentParams{PostID: postID})
				return err
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "Message is required.",
		},
		{
			name: "edit someone else's comment",
			call: func() error {
				_, err := sally.UpdateComment(ctx, UpdateCommentParams{PostID: postID, ID: created.ID, Message: "mine now"})
				return err
			},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "You do not have permission to edit this message.",
		},
		{
			name: "delete someone else's comment",
			call: func() error {
				_, err := sally.DeleteComment(ctx, DeleteCommentParams{PostID: postID, ID: created.ID})
				return err
			},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "You do not have permission to delete this message.",
		},
		{
			name: "missing post",
			call: func() error {
				_, err := alice.GetPost(ctx, "3f1c8a52-7a55-4f51-9b0c-6f6f3f8e0a11")
				return err
			},
			wantStatus: http.StatusNotFound,
			wantMsg:    "Post not found.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "got %v", err)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}

	post, err := sally.GetPost(ctx, postID)
	require.NoError(t, err)
	require.Len(t, post.Comments, 1)
	assert.Equal(t, "alice's", post.Comments[0].Message)
	assert.False(t, post.Comments[0].LikedByMe)
}

func TestClient_Users(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	sally := s.clientAs(t, "Sally")

	me, err := sally.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sally", me.Name)

	same, err := sally.GetUser(ctx, me.ID)
	require.NoError(t, err)
	assert.Equal(t, me, same)

	_, err = sally.GetUser(ctx, "3f1c8a52-7a55-4f51-9b0c-6f6f3f8e0a11")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "User not found.", apiErr.Message)
}

func TestClient_ErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.GetPosts(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Error", apiErr.Message)
	assert.Equal(t, "502: Error", apiErr.Error())
}
