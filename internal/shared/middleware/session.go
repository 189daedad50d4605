package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shopbot-backend/internal/shared/response"
	"shopbot-backend/pkg/jwt"
)

// SessionIDKey is where the authenticated session id lands in the gin
// context.
const SessionIDKey = "session_id"

// SessionAuth validates the bearer session token and injects its
// session id, so a client can only drive the session it was issued.
func SessionAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.ErrorResponse(c, http.StatusUnauthorized, "AUTH_001", "Missing authorization header")
			c.Abort()
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			response.ErrorResponse(c, http.StatusUnauthorized, "AUTH_002", "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.ValidateToken(tokenString)
		if err != nil {
			response.ErrorResponse(c, http.StatusUnauthorized, "AUTH_003", "Invalid or expired session token")
			c.Abort()
			return
		}

		c.Set(SessionIDKey, claims.SessionID)
		c.Next()
	}
}
