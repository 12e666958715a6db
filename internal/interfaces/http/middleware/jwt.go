package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teestore/backend/internal/infrastructure/auth"
	"github.com/teestore/backend/internal/infrastructure/logger"
	"github.com/teestore/backend/internal/interfaces/http/dto"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTRoleKey    = "jwt_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// TokenBlacklist is optional for checking revoked tokens
	TokenBlacklist auth.TokenBlacklist
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultJWTConfig returns the JWT middleware configuration with the public
// storefront endpoints excluded.
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		SkipPathPrefixes: []string{},
	}
}

// RequireAuth creates JWT authentication middleware
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return RequireAuthWithConfig(DefaultJWTConfig(jwtService))
}

// RequireAuthWithConfig creates JWT authentication middleware with custom config
func RequireAuthWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, cfg, nil, dto.ErrCodeUnauthorized, "User not authenticated")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			code, message := tokenErrorCode(err)
			abortUnauthorized(c, cfg, err, code, message)
			return
		}

		if cfg.TokenBlacklist != nil && claims.ID != "" {
			revoked, err := cfg.TokenBlacklist.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// Fail open so a store outage does not lock everyone out.
				if cfg.Logger != nil {
					cfg.Logger.Error("Failed to check token revocation",
						zap.String("jti", claims.ID),
						zap.Error(err))
				}
			} else if revoked {
				abortUnauthorized(c, cfg, auth.ErrInvalidToken, "TOKEN_INVALID", "Token has been revoked")
				return
			}
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth extracts claims when a valid token is present but never rejects.
// Cart and wishlist routes use it so anonymous shoppers pass through.
func OptionalAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// RequireAdmin rejects requests whose claims do not carry the admin role.
// It must run after RequireAuth or OptionalAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "User not authenticated"))
			return
		}
		if !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Admin access required"))
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader(AuthHeaderKey)
	if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, BearerPrefix)
	return token, token != ""
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTRoleKey, claims.Role)

	ctx := c.Request.Context()
	log := logger.FromContext(ctx)
	ctx, _ = logger.WithUserID(ctx, log, claims.UserID)
	c.Request = c.Request.WithContext(ctx)
}

func tokenErrorCode(err error) (string, string) {
	switch err {
	case auth.ErrExpiredToken:
		return "TOKEN_EXPIRED", "Token has expired"
	case auth.ErrInvalidTokenType:
		return "TOKEN_INVALID", "Invalid token type"
	default:
		return "TOKEN_INVALID", "Invalid token"
	}
}

func abortUnauthorized(c *gin.Context, cfg JWTMiddlewareConfig, err error, code, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Authentication failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path))
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}

// GetClaims retrieves JWT claims from gin.Context
func GetClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetUserID retrieves the authenticated user's ID, or uuid.Nil when anonymous
func GetUserID(c *gin.Context) uuid.UUID {
	claims := GetClaims(c)
	if claims == nil {
		return uuid.Nil
	}
	id, err := claims.GetUserUUID()
	if err != nil {
		return uuid.Nil
	}
	return id
}

// IsAdmin reports whether the current request carries admin claims
func IsAdmin(c *gin.Context) bool {
	claims := GetClaims(c)
	return claims != nil && claims.IsAdmin()
}
