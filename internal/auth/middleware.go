package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// Authenticate installs a principal when the request carries a valid bearer
// token. It never rejects: a missing or bad token leaves the request anonymous
// and route guards (internal/rbac) or services decide whether identity is required.
func Authenticate(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(authorizationHeader)
		if !strings.HasPrefix(raw, bearerPrefix) {
			c.Next()
			return
		}
		tok := strings.TrimSpace(strings.TrimPrefix(raw, bearerPrefix))

		if !m.Validate(tok) {
			c.Next()
			return
		}
		p, err := m.Authentication(tok)
		if err != nil {
			c.Next()
			return
		}

		ctx := WithPrincipal(c.Request.Context(), p, tok)
		c.Request = c.Request.WithContext(ctx)

		// Also store on gin context for request logging.
		c.Set("user_id", p.UserID)

		c.Next()
	}
}
