package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with valid inputs", func(t *testing.T) {
		user, err := NewUser("jane@example.com", "password123", "Jane", "Doe")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, UserRoleUser, user.Role)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.Equal(t, "Jane Doe", user.FullName())
	})

	t.Run("lowercases the email", func(t *testing.T) {
		user, err := NewUser("Jane@Example.COM", "password123", "Jane", "Doe")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
	})

	t.Run("fails with empty email", func(t *testing.T) {
		_, err := NewUser("", "password123", "Jane", "Doe")
		require.Error(t, err)
	})

	t.Run("fails with malformed email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "password123", "Jane", "Doe")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email format")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("jane@example.com", "abc1", "Jane", "Doe")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("fails without a digit in the password", func(t *testing.T) {
		_, err := NewUser("jane@example.com", "passwordonly", "Jane", "Doe")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one letter and one number")
	})
}

func TestNewAdminUser(t *testing.T) {
	user, err := NewAdminUser("admin@example.com", "password123", "Admin", "User")
	require.NoError(t, err)
	assert.Equal(t, UserRoleAdmin, user.Role)
	assert.True(t, user.IsAdmin())
}

func TestVerifyPassword(t *testing.T) {
	user, err := NewUser("jane@example.com", "password123", "Jane", "Doe")
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("password123"))
	assert.False(t, user.VerifyPassword("wrong-password"))
}

func TestChangePassword(t *testing.T) {
	user, err := NewUser("jane@example.com", "password123", "Jane", "Doe")
	require.NoError(t, err)

	t.Run("fails with wrong current password", func(t *testing.T) {
		err := user.ChangePassword("wrong", "newpass456")
		require.Error(t, err)
	})

	t.Run("changes with correct current password", func(t *testing.T) {
		err := user.ChangePassword("password123", "newpass456")
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("newpass456"))
		assert.False(t, user.VerifyPassword("password123"))
	})

	t.Run("rejects weak replacement", func(t *testing.T) {
		err := user.SetPassword("short")
		require.Error(t, err)
	})
}

func TestUserStatus(t *testing.T) {
	user, err := NewUser("jane@example.com", "password123", "Jane", "Doe")
	require.NoError(t, err)

	require.NoError(t, user.Disable())
	assert.False(t, user.IsActive())
	require.Error(t, user.Disable())

	require.NoError(t, user.Enable())
	assert.True(t, user.IsActive())
	require.Error(t, user.Enable())
}

func TestRecordLogin(t *testing.T) {
	user, err := NewUser("jane@example.com", "password123", "Jane", "Doe")
	require.NoError(t, err)
	require.Nil(t, user.LastLoginAt)

	user.RecordLogin()
	assert.NotNil(t, user.LastLoginAt)
}
