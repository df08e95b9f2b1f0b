package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/response"
)

// Context keys set by AuthenticateAdmin
const (
	ContextAdminID  = "adminID"
	ContextUsername = "username"
	ContextRole     = "role"
)

// extractToken strips the "Bearer " prefix of the authorization header
func extractToken(authHeader string) string {
	authHeader = strings.TrimSpace(authHeader)
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

// AuthenticateAdmin validates the bearer token and re-checks that the admin
// still exists and is active before letting the request through.
func AuthenticateAdmin(jwtService services.InterfaceJWTService, adminService services.InterfaceAdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			response.AbortWithError(c, code.New(code.ErrTokenMissing))
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		admin, err := adminService.GetActiveAdmin(c.Request.Context(), claims.UserID)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		c.Set(ContextAdminID, admin.ID)
		c.Set(ContextUsername, admin.Username)
		c.Set(ContextRole, admin.Role)
		c.Next()
	}
}

// CurrentActor returns who is performing the request. Public requests carry
// only the client IP.
func CurrentActor(c *gin.Context) services.Actor {
	actor := services.Actor{IP: c.ClientIP()}
	if id, ok := c.Get(ContextAdminID); ok {
		if adminID, ok := id.(uint); ok {
			actor.AdminID = &adminID
		}
		actor.Username = c.GetString(ContextUsername)
	}
	return actor
}
