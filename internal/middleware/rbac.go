package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
	appErrors "github.com/Dhruvina99/sevarthi-api/pkg/errors"
	"github.com/Dhruvina99/sevarthi-api/pkg/response"
)

// AllowSelf grants access when the :id route parameter is the caller's member id.
const AllowSelf = "SELF"

// RBAC enforces role-based access control for routes.
func RBAC(allowed ...string) gin.HandlerFunc {
	allowSelf := false
	allowedRoles := make(map[models.UserRole]struct{}, len(allowed))
	for _, a := range allowed {
		if a == AllowSelf {
			allowSelf = true
			continue
		}
		allowedRoles[models.UserRole(a)] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowedRoles[claims.Role]; ok {
			c.Next()
			return
		}
		if allowSelf {
			if targetID := c.Param("id"); targetID != "" && targetID == claims.MemberID {
				c.Next()
				return
			}
		}

		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}

// RequireRoles is a helper that accepts a list of roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make([]string, len(roles))
	for i, r := range roles {
		allowed[i] = string(r)
	}
	return RBAC(allowed...)
}

// AdminOrSelf admits admins and the member addressed by :id.
func AdminOrSelf() gin.HandlerFunc {
	return RBAC(string(models.RoleAdmin), AllowSelf)
}
