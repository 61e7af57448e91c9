package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserDefaults(t *testing.T) {
	u, err := NewUser("test@example.com", "John", "Doe", "hashedpassword")
	require.NoError(t, err)

	_, err = uuid.Parse(u.ID)
	require.NoError(t, err, "id must be a uuid")
	assert.Equal(t, "test@example.com", u.Email)
	assert.Equal(t, "John", u.FirstName)
	assert.Equal(t, "Doe", u.LastName)
	assert.Equal(t, "hashedpassword", u.PasswordHash)
	assert.Equal(t, RoleUser, u.Role)
	assert.True(t, u.IsActive)
	assert.False(t, u.CreatedAtUTC.IsZero())
	assert.True(t, u.UpdatedAtUTC.IsZero())
	assert.Empty(t, u.RefreshToken)
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		first   string
		last    string
		hash    string
		wantErr error
	}{
		{"empty email", "", "John", "Doe", "h", ErrEmailRequired},
		{"whitespace email", "   ", "John", "Doe", "h", ErrEmailRequired},
		{"empty first name", "a@x.com", "", "Doe", "h", ErrFirstNameRequired},
		{"empty last name", "a@x.com", "John", "", "h", ErrLastNameRequired},
		{"empty hash", "a@x.com", "John", "Doe", "", ErrHashRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.email, tt.first, tt.last, tt.hash)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	u, err := NewUser("test@example.com", "John", "Doe", "h")
	require.NoError(t, err)

	require.NoError(t, u.UpdateProfile("Jane", "Smith"))
	assert.Equal(t, "Jane", u.FirstName)
	assert.Equal(t, "Smith", u.LastName)
	assert.False(t, u.UpdatedAtUTC.IsZero())

	assert.Error(t, u.UpdateProfile("", "Smith"))
}

func TestRefreshTokenLifecycle(t *testing.T) {
	u, err := NewUser("test@example.com", "John", "Doe", "h")
	require.NoError(t, err)
	assert.False(t, u.RefreshTokenValid())

	expiry := time.Now().UTC().Add(7 * 24 * time.Hour)
	u.SetRefreshToken("tok", expiry)
	assert.Equal(t, "tok", u.RefreshToken)
	assert.Equal(t, expiry, u.RefreshTokenExpiryUTC)
	assert.True(t, u.RefreshTokenValid())

	u.ClearRefreshToken()
	assert.Empty(t, u.RefreshToken)
	assert.True(t, u.RefreshTokenExpiryUTC.IsZero())
	assert.False(t, u.RefreshTokenValid())
}

func TestRefreshTokenValidExpired(t *testing.T) {
	u, err := NewUser("test@example.com", "John", "Doe", "h")
	require.NoError(t, err)

	u.SetRefreshToken("tok", time.Now().UTC().Add(-time.Minute))
	assert.False(t, u.RefreshTokenValid())
}

func TestDeactivateClearsRefreshToken(t *testing.T) {
	u, err := NewUser("test@example.com", "John", "Doe", "h")
	require.NoError(t, err)
	u.SetRefreshToken("tok", time.Now().UTC().Add(time.Hour))

	u.Deactivate()
	assert.False(t, u.IsActive)
	assert.Empty(t, u.RefreshToken)
	assert.True(t, u.RefreshTokenExpiryUTC.IsZero())
}

func TestAssignRole(t *testing.T) {
	u, err := NewUser("test@example.com", "John", "Doe", "h")
	require.NoError(t, err)

	u.AssignRole(RoleAdmin)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.False(t, u.UpdatedAtUTC.IsZero())
}
