package middleware

import (
	"net/http"
	"strings"

	"tourhub/internal/http-api/service"
	"tourhub/internal/security"

	"github.com/gin-gonic/gin"
)

// PrincipalKey is the gin context key the resolved principal is stored under.
const PrincipalKey = "principal"

// AuthMiddleware checks for a bearer token in the Authorization header and
// resolves it into a principal. Resolution is claims-only (no database
// round-trip per request); role changes take effect when a new token is issued.
func AuthMiddleware(principals service.PrincipalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		principal := principals.LoadByToken(parts[1])
		if principal == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// CurrentPrincipal returns the principal set by AuthMiddleware, or nil when
// the request is unauthenticated.
func CurrentPrincipal(c *gin.Context) *security.Principal {
	v, exists := c.Get(PrincipalKey)
	if !exists {
		return nil
	}
	principal, ok := v.(*security.Principal)
	if !ok {
		return nil
	}
	return principal
}

// RequireAuthority rejects requests whose principal does not carry the named
// authority.
func RequireAuthority(authority string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		if principal == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "principal not found"})
			c.Abort()
			return
		}

		if !principal.HasAuthority(authority) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "insufficient permissions",
				"required": authority,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
