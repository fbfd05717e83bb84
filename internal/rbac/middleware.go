package rbac

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAuthenticated rejects anonymous requests with 401.
// Use it on routes that need an identity before any resource is loaded.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := CurrentPrincipal(c.Request.Context()); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated", "message": "authentication required"})
			return
		}
		c.Next()
	}
}

// RequireAnyAuthority allows access if the caller holds any of the provided authorities.
func RequireAnyAuthority(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := CurrentPrincipal(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated", "message": "authentication required"})
			return
		}
		for _, a := range allowed {
			if p.HasAuthority(a) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not_authorized", "message": "forbidden"})
	}
}
