package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hostel-allocation-backend/internal/auth"
	"hostel-allocation-backend/internal/model"
)

// Context keys set by the auth middleware.
const (
	CtxUserID = "auth_user_id"
	CtxRole   = "auth_role"
)

// Auth verifies the bearer token and stores the caller's identity and role in
// the request context.
func Auth(manager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}

		userID, role, err := manager.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// RequireRole gates a route to callers with the given role. The check runs
// once at operation entry; handlers never re-inspect the role themselves.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CallerRole(c) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

// CallerID returns the authenticated user's ID, zero when unauthenticated.
func CallerID(c *gin.Context) int64 {
	id, _ := c.Get(CtxUserID)
	userID, _ := id.(int64)
	return userID
}

// CallerRole returns the authenticated user's role, empty when unauthenticated.
func CallerRole(c *gin.Context) model.Role {
	r, _ := c.Get(CtxRole)
	role, _ := r.(model.Role)
	return role
}
