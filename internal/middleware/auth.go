package middleware

import (
	"strings"

	"clinic-booking-server/internal/config"
	"clinic-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware creates a middleware for JWT authentication.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1], cfg.JWTSecret)
		if err != nil {
			utils.Unauthorized(c, "Invalid token: "+err.Error())
			c.Abort()
			return
		}

		// Set user information in context for downstream handlers
		c.Set("userID", claims.UserID)
		c.Set("userRoles", claims.Roles)

		c.Next()
	}
}

// RoleAuthMiddleware creates a middleware for role-based authorization.
// It should be used *after* AuthMiddleware. A user holding any of the
// allowed roles passes.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, ok := GetUserRolesFromContext(c)
		if !ok {
			utils.InternalServerError(c, "User roles not found in context. AuthMiddleware might be missing.")
			c.Abort()
			return
		}

		for _, role := range roles {
			for _, allowed := range allowedRoles {
				if role == allowed {
					c.Next()
					return
				}
			}
		}

		utils.Forbidden(c, "You do not have permission to access this resource.")
		c.Abort()
	}
}

// GetUserIDFromContext returns the authenticated user's id.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	idStr, ok := userID.(string)
	return idStr, ok
}

// GetUserRolesFromContext returns the authenticated user's role names.
func GetUserRolesFromContext(c *gin.Context) ([]string, bool) {
	value, exists := c.Get("userRoles")
	if !exists {
		return nil, false
	}
	roles, ok := value.([]string)
	return roles, ok
}

// HasContextRole reports whether the authenticated user holds the role.
func HasContextRole(c *gin.Context, name string) bool {
	roles, ok := GetUserRolesFromContext(c)
	if !ok {
		return false
	}
	for _, role := range roles {
		if role == name {
			return true
		}
	}
	return false
}
