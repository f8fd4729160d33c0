// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"zeroun-site/logger"
	"zeroun-site/services"
)

// usernameKey is where TokenRequired stores the verified admin username.
const usernameKey = "username"

// -------------- authentication middleware --------------

// TokenRequired ensures the request carries a valid bearer token.
// How it works:
// - Reads the Authorization header and strips the "Bearer " prefix.
// - Verifies the token signature and expiry via the auth service.
// - On failure, replies 401 with a WWW-Authenticate challenge and aborts.
// - On success, stores the token's username in the context and proceeds.
func TokenRequired(auth services.AuthServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			logger.Warn.Printf("[TokenRequired] Missing bearer token for %s %s", c.Request.Method, c.Request.URL.Path)
			abortUnauthorized(c)
			return
		}

		username, err := auth.VerifyToken(token)
		if err != nil {
			logger.Warn.Printf("[TokenRequired] Rejected token for %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			abortUnauthorized(c)
			return
		}

		c.Set(usernameKey, username)
		c.Next()
	}
}

// Username returns the admin username stored by TokenRequired.
func Username(c *gin.Context) string {
	return c.GetString(usernameKey)
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
}
