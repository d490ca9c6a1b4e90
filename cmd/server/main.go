package main

import (
	"context"
	"log"

	"github.com/nested-comments/backend/internal/repositories"
	"github.com/nested-comments/backend/internal/router"
	"github.com/nested-comments/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	ctx := context.Background()
	store, err := db.Store(ctx)
	if err != nil {
		log.Fatalf("Failed to prepare store: %v", err)
	}

	if cfg.SeedData {
		if err := repositories.Seed(ctx, store); err != nil {
			log.Fatalf("Failed to seed store: %v", err)
		}
	}

	// Every visitor without a session acts as the demo user
	demoUser, err := store.Users.GetUserByName(ctx, cfg.DemoUserName)
	if err != nil {
		log.Fatalf("Failed to load demo user %q: %v", cfg.DemoUserName, err)
	}

	e := router.New(cfg, store, demoUser.ID)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
