package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/teestore/backend/internal/application/identity"
)

// Session key context and header names
const (
	SessionKeyHeader     = "X-Session-Key"
	SessionKeyContextKey = "session_key"
	OwnerKeyContextKey   = "owner_key"
)

// maxSessionKeyLength guards against abusive header values becoming store keys
const maxSessionKeyLength = 128

// SessionKey resolves the cart/wishlist owner key for the request.
// Authenticated shoppers own their server-side key derived from the user ID.
// Anonymous shoppers present a session key header; when it is missing the
// server issues one and echoes it back so the client can persist it.
// Must run after OptionalAuth.
func SessionKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionKey := ClientSessionKey(c)
		if sessionKey == "" {
			sessionKey = uuid.NewString()
		}
		c.Set(SessionKeyContextKey, sessionKey)
		c.Writer.Header().Set(SessionKeyHeader, sessionKey)

		if userID := GetUserID(c); userID != uuid.Nil {
			c.Set(OwnerKeyContextKey, identity.UserOwnerKey(userID))
		} else {
			c.Set(OwnerKeyContextKey, sessionKey)
		}

		c.Next()
	}
}

// ClientSessionKey returns the session key the client presented, or empty
// when the header is absent or oversized
func ClientSessionKey(c *gin.Context) string {
	sessionKey := c.GetHeader(SessionKeyHeader)
	if len(sessionKey) > maxSessionKeyLength {
		return ""
	}
	return sessionKey
}

// GetOwnerKey returns the owner key resolved by the SessionKey middleware
func GetOwnerKey(c *gin.Context) string {
	return c.GetString(OwnerKeyContextKey)
}

// GetSessionKey returns the anonymous session key for the request
func GetSessionKey(c *gin.Context) string {
	return c.GetString(SessionKeyContextKey)
}
