package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"calorie_backend/internal/api"
	"calorie_backend/internal/feature/users/domain/entity"
	jwtmw "calorie_backend/internal/platform/jwt"
)

// ContextUser is the gin context key under which the loaded user record is
// stored for downstream handlers.
const ContextUser = "currentUser"

// UserFinder loads the user record named in the URL path.
// Following Go convention: interfaces are defined by the consumer (middleware), not the provider (adapters).
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

// RequireOwnership restricts routes parameterized by :username to the
// authenticated owner. The identity comparison runs before the store lookup,
// so a mismatch is rejected with 403 whether or not the target user exists,
// and the route never acts as an existence oracle for other accounts.
// On success the loaded user record is attached to the context.
func RequireOwnership(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authUsername := c.GetString(jwtmw.ContextUsername)
		pathUsername := c.Param("username")

		if pathUsername != authUsername {
			api.AbortError(c, fmt.Errorf("%s is %w: %s", authUsername, api.ErrForbidden, pathUsername))
			return
		}

		user, err := users.FindByUsername(c.Request.Context(), pathUsername)
		if err != nil {
			api.AbortError(c, err)
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// UserFromContext returns the user record loaded by RequireOwnership.
func UserFromContext(c *gin.Context) *entity.User {
	u, _ := c.MustGet(ContextUser).(*entity.User)
	return u
}
