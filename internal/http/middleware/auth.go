package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mbella/transvoyages/internal/auth"
	"github.com/mbella/transvoyages/internal/model"
)

const principalKey = "principal"

// Auth validates the Bearer token and stores the caller's Principal in the
// gin context for MustPrincipal.
func Auth(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		principal, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

func MustPrincipal(c *gin.Context) (model.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	principal, ok := v.(model.Principal)
	return principal, ok
}

// SetPrincipal injects a caller directly, bypassing token parsing. Test use.
func SetPrincipal(c *gin.Context, p model.Principal) {
	c.Set(principalKey, p)
}
