package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/nested-comments/backend/internal/models"
	"github.com/nested-comments/backend/internal/repositories"
)

// CookieName is the cookie carrying the signed user id
const CookieName = "user_id"

const userIDKey = "userID"

// SessionConfig configures the Session middleware
type SessionConfig struct {
	// Secret signs and verifies the cookie value
	Secret []byte
	// Secure marks the issued cookie as HTTPS only
	Secure bool
	// DemoUserID is assigned to visitors without a usable cookie
	DemoUserID string
	Users      repositories.UserRepository
}

// Session resolves the calling user from the user_id cookie and stores the
// id on the request context. A missing, forged or stale cookie gets the demo
// identity and a freshly issued cookie.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := currentUserID(c, cfg)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}

			if userID == "" {
				token, err := SignUserID(cfg.Secret, cfg.DemoUserID)
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
				}
				c.SetCookie(&http.Cookie{
					Name:     CookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
				userID = cfg.DemoUserID
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// currentUserID returns the user named by a valid cookie, or "" when the
// request has to fall back to the demo identity.
func currentUserID(c echo.Context, cfg SessionConfig) (string, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", nil
	}

	userID, err := ParseUserID(cfg.Secret, cookie.Value)
	if err != nil {
		return "", nil
	}

	if _, err := cfg.Users.GetUserByID(c.Request().Context(), userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return userID, nil
}

// UserID returns the id resolved by Session for this request
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

// SignUserID produces the cookie value for a user
func SignUserID(secret []byte, userID string) (string, error) {
	claims := &models.SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseUserID verifies a cookie value and returns the user id inside it
func ParseUserID(secret []byte, value string) (string, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.UserID == "" {
		return "", errors.New("invalid session token")
	}
	return claims.UserID, nil
}
