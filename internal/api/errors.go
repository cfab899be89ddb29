package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authuc "calorie_backend/internal/feature/auth/usecase"
	"calorie_backend/internal/feature/users/domain"
)

// Transport-level error values. Handlers and middleware wrap these with
// fmt.Errorf("%w: ...") to add detail; Error classifies with errors.Is.
var (
	// ErrUnauthorized indicates a missing, malformed, expired or otherwise
	// unverifiable bearer token.
	ErrUnauthorized = errors.New("user is not authorised")

	// ErrForbidden indicates an authenticated user acting on another user's resources.
	ErrForbidden = errors.New("not authorised to view username")
)

// statusOf maps a failure to its HTTP status code.
// Anything unclassified is a server error.
func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, authuc.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUsernameAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrDateNotFound),
		errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is the single responder for failed requests. It assigns the HTTP
// status from the error kind and emits {"message": ...}. Unclassified errors
// are logged but their details never reach the client.
func Error(c *gin.Context, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		msg = "internal server error"
	}
	c.JSON(status, ErrorResponse{Message: msg})
}

// AbortError responds like Error and aborts the middleware chain.
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
