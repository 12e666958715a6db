package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/teestore/backend/internal/domain/identity"
)

// RegisterInput carries the data for a new account
type RegisterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"required,min=1,max=100"`
}

// LoginInput carries login credentials. SessionKey, when present, is the
// anonymous owner key whose cart and wishlist merge into the account.
type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	SessionKey string `json:"-"`
}

// UpdateProfileInput carries a partial profile update. Absent fields keep
// their current value.
type UpdateProfileInput struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1,max=100"`
}

// RefreshTokenInput carries a refresh token
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutInput carries the refresh token to invalidate
type LogoutInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserInfo is the sanitized user representation; it never carries the hash
type UserInfo struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LoginResult is returned on successful authentication
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenResult is returned on successful token refresh
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// UserOwnerKey is the session-store owner key for an authenticated user.
// Anonymous visitors use their issued session key directly.
func UserOwnerKey(userID uuid.UUID) string {
	return "user:" + userID.String()
}

// ToUserInfo converts a domain User to its sanitized representation
func ToUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        string(u.Role),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
