package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nested-comments/backend/internal/middleware"
	"github.com/nested-comments/backend/internal/repositories"
)

const msgUserNotFound = "User not found."

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetCurrentUser) // Session user, the cookie is not readable by scripts
	g.GET("/users/:id", h.GetUser)
}

// GetUser returns the public profile of any user
func (h *UserHandler) GetUser(c echo.Context) error {
	id := c.Param("id")
	if !validID(id) {
		return echo.NewHTTPError(http.StatusNotFound, msgUserNotFound)
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return storeError(err, msgUserNotFound)
	}
	return c.JSON(http.StatusOK, user)
}

// GetCurrentUser returns the user the request's session resolved to
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return storeError(err, msgUserNotFound)
	}
	return c.JSON(http.StatusOK, user)
}
