package middleware

import (
	"net/http"

	"github.com/mcatania72/CRM-System-NEW/internal/service"

	"github.com/gin-gonic/gin"
)

// RequirePermission guards a route with a role-based permission check.
// It must run after AuthMiddleware.
func RequirePermission(authzService *service.AuthorizationService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetUserFromContext(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found in context"})
			c.Abort()
			return
		}

		allowed, err := authzService.CheckPermission(user, resource, action)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "authorization check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"message": "access denied - insufficient role"})
			c.Abort()
			return
		}

		c.Next()
	}
}
