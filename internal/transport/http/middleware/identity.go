package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"jobly/internal/core/auth"
)

const KeyIdentity = "identity"

// Identify decodes a Bearer token when one is present. A missing or invalid
// token leaves the request anonymous; gates decide what that means.
func Identify(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if tok, ok := strings.CutPrefix(ah, "Bearer "); ok && tok != "" {
			if id, err := j.Verify(strings.TrimSpace(tok)); err == nil {
				c.Set(KeyIdentity, id)
			}
		}
		c.Next()
	}
}

// IdentityFrom returns the verified caller, or nil.
func IdentityFrom(c *gin.Context) *auth.Identity {
	v, ok := c.Get(KeyIdentity)
	if !ok {
		return nil
	}
	id, _ := v.(*auth.Identity)
	return id
}
