package router

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/nested-comments/backend/internal/handlers"
	"github.com/nested-comments/backend/internal/middleware"
	"github.com/nested-comments/backend/internal/repositories"
	"github.com/nested-comments/backend/pkg/config"
	"github.com/nested-comments/backend/validators"
)

// New builds the Echo application: validator, global middleware and routes
func New(cfg *config.Config, store *repositories.Store, demoUserID string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	config.SetupMiddleware(e, cfg)
	SetupRoutes(e, store, middleware.SessionConfig{
		Secret:     []byte(cfg.CookieSecret),
		Secure:     cfg.IsProd(),
		DemoUserID: demoUserID,
		Users:      store.Users,
	})
	return e
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, store *repositories.Store, session middleware.SessionConfig) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Every API request is tied to a session user
	api := e.Group("")
	api.Use(middleware.Session(session))

	// User routes
	userHandler := handlers.NewUserHandler(store.Users)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(store.Posts, store.Comments, store.Likes)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(store.Comments, store.Posts, store.Likes)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")
}
