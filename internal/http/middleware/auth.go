// README: JWT auth middleware; required and optional variants.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"roam/internal/modules/user"
)

// ContextUserID is the gin context key holding the authenticated user id.
const ContextUserID = "auth_user_id"

// TokenVerifier validates a bearer token. Implemented by user.Service.
type TokenVerifier interface {
	VerifyToken(token string) (*user.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := verify(c, verifier)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		c.Set(ContextUserID, claims.Subject)
		c.Next()
	}
}

// OptionalAuth attaches the user id when a valid token is present and lets
// anonymous requests through.
func OptionalAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := verify(c, verifier); ok {
			c.Set(ContextUserID, claims.Subject)
		}
		c.Next()
	}
}

// UserID returns the authenticated user id, empty for anonymous requests.
func UserID(c *gin.Context) string {
	v, _ := c.Get(ContextUserID)
	id, _ := v.(string)
	return id
}

func verify(c *gin.Context, verifier TokenVerifier) (*user.Claims, bool) {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil, false
	}
	claims, err := verifier.VerifyToken(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}
