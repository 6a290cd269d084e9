package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resort-backend/utils"
)

const (
	CtxUID     = "uid"
	CtxEmail   = "email"
	CtxName    = "name"
	CtxIsAdmin = "isAdmin"
)

// AuthRequired parses the Bearer session token and stashes identity in the
// gin context. Missing/invalid token -> 401.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.JSONErrorCode(c, http.StatusUnauthorized, "error.unauthenticated", "sign in required")
			c.Abort()
			return
		}
		claims, err := utils.ParseSessionToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.JSONErrorCode(c, http.StatusUnauthorized, "error.unauthenticated", "sign in required")
			c.Abort()
			return
		}
		c.Set(CtxUID, claims.UID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxName, claims.Name)
		c.Set(CtxIsAdmin, claims.IsAdmin)
		c.Next()
	}
}

// OptionalAuth sets identity when a valid token is present but lets
// anonymous requests through. Used by public routes whose response is
// personalized for signed-in users (room prices under an active discount).
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			if claims, err := utils.ParseSessionToken(secret, strings.TrimPrefix(header, "Bearer ")); err == nil {
				c.Set(CtxUID, claims.UID)
				c.Set(CtxEmail, claims.Email)
				c.Set(CtxName, claims.Name)
				c.Set(CtxIsAdmin, claims.IsAdmin)
			}
		}
		c.Next()
	}
}

// AdminOnly gates the back-office routes. A signed-in non-admin gets a static
// access-denied response, never an exception.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(CtxIsAdmin) {
			utils.JSONErrorCode(c, http.StatusForbidden, "error.accessDenied", "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
