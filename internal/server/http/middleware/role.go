package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/solarteam/purchaseline/internal/domain/errors"
	"github.com/solarteam/purchaseline/internal/domain/model"
)

// UserSource loads user records for role checks.
type UserSource interface {
	UserByID(ctx context.Context, id int64) (*model.User, error)
}

// RequireRole loads the authenticated user and rejects the request unless
// the user holds one of the listed roles. Must run after AuthRequired.
func RequireRole(source UserSource, roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(UserIDContextKey)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		userID, _ := val.(int64)

		user, err := source.UserByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Set(UserContextKey, user)
				c.Next()
				return
			}
		}
		c.AbortWithStatus(http.StatusForbidden)
	}
}
