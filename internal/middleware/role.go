package middleware

import (
	"net/http"
	"slices"

	domainUser "lost-and-found/internal/domain/user"
	"lost-and-found/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleMiddleware admits callers whose token role is one of allowed. It runs
// after AuthMiddleware; a request without a role never authenticated.
func RoleMiddleware(allowed ...domainUser.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := domainUser.Role(CurrentRole(c))
		if role == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
			c.Abort()
			return
		}

		if !slices.Contains(allowed, role) {
			userID, _ := CurrentUserID(c)
			RequestLogger(c).Warn("Role check denied",
				zap.Uint("user_id", userID),
				zap.String("role", string(role)),
				zap.String("path", c.FullPath()),
			)
			utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware(domainUser.RoleAdmin)
}

func IsAdmin(c *gin.Context) bool {
	return domainUser.Role(CurrentRole(c)) == domainUser.RoleAdmin
}
