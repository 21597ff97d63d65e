package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mcatania72/CRM-System-NEW/internal/auth"
	"github.com/mcatania72/CRM-System-NEW/internal/model"
	"github.com/mcatania72/CRM-System-NEW/internal/service"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// AuthMiddleware verifies the Bearer token, loads the referenced user and
// attaches it to the request context. Missing token yields 401; an invalid
// or expired token, or an absent or deactivated user, yields 403.
func AuthMiddleware(authService *auth.Service, users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "access token required"})
			c.Abort()
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"message": "invalid token"})
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(http.StatusForbidden, gin.H{"message": "invalid or deactivated user"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
			}
			c.Abort()
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"message": "invalid or deactivated user"})
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// GetUserFromContext returns the authenticated user set by AuthMiddleware.
func GetUserFromContext(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}
