package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaysam/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when the role check fails (optional)
	OnDenied func(c *gin.Context, required identity.Role)
}

// RequireRole creates middleware that requires at least the given role.
// Roles are ordered, so a Manager passes an Employee check.
func RequireRole(min identity.Role) gin.HandlerFunc {
	return RequireRoleWithConfig(min, RoleConfig{})
}

// RequireRoleWithConfig creates role middleware with custom config
func RequireRoleWithConfig(min identity.Role, cfg RoleConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleRoleDenied(c, cfg, min, "No authentication claims found")
			return
		}

		role := identity.Role(claims.Role)
		if !role.IsValid() {
			handleRoleDenied(c, cfg, min, "Unknown role in token")
			return
		}

		if !role.AtLeast(min) {
			handleRoleDenied(c, cfg, min, "User role below required level")
			return
		}

		if cfg.Logger != nil {
			cfg.Logger.Debug("Role check passed",
				zap.String("user_id", claims.UserID),
				zap.String("role", claims.Role),
				zap.String("required", min.String()),
			)
		}

		c.Next()
	}
}

// RequireStaff requires Employee or above
func RequireStaff() gin.HandlerFunc {
	return RequireRole(identity.RoleEmployee)
}

// RequireElevated requires Admin or above
func RequireElevated() gin.HandlerFunc {
	return RequireRole(identity.RoleAdmin)
}

// handleRoleDenied handles role check failures
func handleRoleDenied(c *gin.Context, cfg RoleConfig, required identity.Role, reason string) {
	if cfg.Logger != nil {
		claims := GetJWTClaims(c)
		userID := ""
		if claims != nil {
			userID = claims.UserID
		}
		cfg.Logger.Warn("Role check failed",
			zap.String("user_id", userID),
			zap.String("required", required.String()),
			zap.String("reason", reason),
			zap.String("path", c.Request.URL.Path),
		)
	}

	if cfg.OnDenied != nil {
		cfg.OnDenied(c, required)
		return
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_FORBIDDEN",
			"message": "Insufficient role for this operation",
		},
	})
}
