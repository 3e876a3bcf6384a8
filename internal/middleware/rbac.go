package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ngocminh-dev/tcms-api/internal/models"
	appErrors "github.com/ngocminh-dev/tcms-api/pkg/errors"
	"github.com/ngocminh-dev/tcms-api/pkg/response"
)

// RequireAdmin restricts a route to administrators.
func RequireAdmin() gin.HandlerFunc {
	return requireRole(models.Role.IsAdmin)
}

// RequireAdminOrStaff restricts a route to administrators and staff. This is
// a separate policy unit from RequireAdmin, not a superset check.
func RequireAdminOrStaff() gin.HandlerFunc {
	return requireRole(models.Role.IsAdminOrStaff)
}

func requireRole(allowed func(models.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := CurrentUser(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if !allowed(claims.Role) {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
