package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UsernameContextKey is where the verified caller identity lives in the
// gin context. Handlers must take the sender identity from here and never
// from the request body.
const UsernameContextKey = "username"

// TokenVerifier resolves a bearer token to the username it was issued for.
type TokenVerifier interface {
	Verify(tokenStr string) (string, error)
}

// AuthMiddleware validates the Authorization header and injects the
// caller's verified username into the request context.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		username, err := verifier.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(UsernameContextKey, username)
		c.Next()
	}
}
