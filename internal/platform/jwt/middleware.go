package jwtmw

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"calorie_backend/internal/api"
)

// ContextUsername is the gin context key under which the authenticated
// username is stored for downstream handlers.
const ContextUsername = "username"

// AuthRequired returns a Gin middleware function that validates bearer tokens
// and restricts access to authenticated users only. It runs before any
// route-specific logic that depends on the resolved identity.
func AuthRequired(verifier *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if auth == "" {
			api.AbortError(c, api.ErrUnauthorized)
			return
		}

		// 2. Verify signature and expiry, resolve the subject to a user
		identity, err := verifier.Verify(c.Request.Context(), auth)
		if err != nil {
			slog.Warn("token verification failed", "error", err, "remote_addr", c.ClientIP())
			api.AbortError(c, api.ErrUnauthorized)
			return
		}

		// 3. Attach the identity for downstream handlers
		c.Set(ContextUsername, identity.Username)
		c.Next()
	}
}
