package repositories

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nested-comments/backend/internal/models"
)

// SeedUserNames are the users created on an empty store. The first one is
// the default demo identity.
var SeedUserNames = []string{"Saifuddin", "Sally"}

var seedPosts = []models.Post{
	{
		Title: "Post 1",
		Body:  "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Integer nec odio. Praesent libero. Sed cursus ante dapibus diam.",
	},
	{
		Title: "Post 2",
		Body:  "Sed nisi. Nulla quis sem at nibh elementum imperdiet. Duis sagittis ipsum. Praesent mauris. Fusce nec tellus sed augue semper porta.",
	},
}

// Seed creates the demo users and posts when the store has no users yet
func Seed(ctx context.Context, store *Store) error {
	count, err := store.Users.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		log.Println("Users already seeded, skipping")
		return nil
	}

	for _, name := range SeedUserNames {
		if err := store.Users.CreateUser(ctx, &models.User{Name: name}); err != nil {
			return fmt.Errorf("creating user %s: %w", name, err)
		}
	}

	base := time.Now()
	for i, p := range seedPosts {
		post := p
		post.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := store.Posts.CreatePost(ctx, &post); err != nil {
			return fmt.Errorf("creating post %q: %w", post.Title, err)
		}
	}

	log.Printf("Seeded %d users and %d posts", len(SeedUserNames), len(seedPosts))
	return nil
}
