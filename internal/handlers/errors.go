package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/nested-comments/backend/internal/repositories"
)

const (
	msgPostNotFound    = "Post not found."
	msgCommentNotFound = "Comment not found."
	msgMessageRequired = "Message is required."
	msgParentNotFound  = "Parent comment not found."
	msgLikeConflict    = "Like was changed by a concurrent request."
)

// storeError turns a repository error into the HTTP error sent to the
// client. Unknown errors become a 500 carrying the store's message.
func storeError(err error, notFoundMessage string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, notFoundMessage)
	case errors.Is(err, repositories.ErrLikeConflict):
		return echo.NewHTTPError(http.StatusConflict, msgLikeConflict)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// validationError maps failed struct tags to a 422 with a readable message
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "CommentID" {
				return echo.NewHTTPError(http.StatusUnprocessableEntity, msgParentNotFound)
			}
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity, msgMessageRequired)
	}
	return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
}

// validID reports whether a path parameter can name a stored record. Ids
// are UUIDs, so anything else cannot exist.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}
