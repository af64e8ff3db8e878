package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	jwtpkg "analysis/toolutil/pkg/jwt"
	"analysis/toolutil/pkg/response"
)

const ContextKeyClientClaims = "client_claims"

// BearerAuth requires a token minted by jwtManager on every request.
func BearerAuth(jwtManager *jwtpkg.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization format")
			c.Abort()
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyClientClaims, claims)
		c.Next()
	}
}
