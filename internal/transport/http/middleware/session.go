package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"univoice/internal/session"
)

const (
	ContextSessionKey = "session_state"
	ContextTokenKey   = "session_token"
)

// Session resolves the caller's state from a bearer token or the session
// cookie. Requests without a valid token continue as anonymous.
func Session(gate *session.Gate, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c, cookieName)
		c.Set(ContextTokenKey, token)
		c.Set(ContextSessionKey, gate.Resolve(c.Request.Context(), token))
		c.Next()
	}
}

func TokenFromRequest(c *gin.Context, cookieName string) string {
	const prefix = "Bearer "
	if header := strings.TrimSpace(c.GetHeader("Authorization")); strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, prefix))
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

func StateFromContext(c *gin.Context) session.State {
	if v, ok := c.Get(ContextSessionKey); ok {
		if state, ok := v.(session.State); ok {
			return state
		}
	}
	return session.Anonymous()
}

func TokenFromContext(c *gin.Context) string {
	return c.GetString(ContextTokenKey)
}
