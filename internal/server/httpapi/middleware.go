package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dsmirnov87/taskvault/internal/server/auth"
)

// gin context keys set by requireToken.
const (
	ctxUsernameKey = "username"
	ctxJTIKey      = "jti"
)

// requireToken verifies the bearer token as the given kind, consults the
// revocation ledger, and binds the caller identity into the request context.
// A revoked token is rejected even when its signature and expiry are valid.
func (s *Server) requireToken(kind auth.TokenKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			c.Abort()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			c.Abort()
			return
		}

		claims, err := s.tokens.Verify(parts[1], kind)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		revoked, err := s.users.IsTokenRevoked(c.Request.Context(), claims.JTI())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "authorization check failed"})
			c.Abort()
			return
		}
		if revoked {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token has been revoked"})
			c.Abort()
			return
		}

		c.Set(ctxUsernameKey, claims.Username())
		c.Set(ctxJTIKey, claims.JTI())
		c.Next()
	}
}

// requestLog emits one structured line per request.
func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
