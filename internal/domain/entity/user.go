package entity

import (
	"errors"
	"strings"
	"time"
)

// Roles assignable to a user account.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

var (
	ErrEmailRequired     = errors.New("email cannot be empty")
	ErrFirstNameRequired = errors.New("first name cannot be empty")
	ErrLastNameRequired  = errors.New("last name cannot be empty")
	ErrHashRequired      = errors.New("password hash cannot be empty")
)

// User is the aggregate root for a user account. PasswordHash holds a bcrypt
// digest and must never appear in logs, cache values, or API responses.
// RefreshToken and RefreshTokenExpiryUTC are either both set or both zero.
type User struct {
	Identity
	Email                 string
	FirstName             string
	LastName              string
	PasswordHash          string
	Role                  string
	IsActive              bool
	RefreshToken          string
	RefreshTokenExpiryUTC time.Time
}

// NewUser creates an active user with the default role.
func NewUser(email, firstName, lastName, passwordHash string) (*User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmailRequired
	}
	if strings.TrimSpace(firstName) == "" {
		return nil, ErrFirstNameRequired
	}
	if strings.TrimSpace(lastName) == "" {
		return nil, ErrLastNameRequired
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, ErrHashRequired
	}
	return &User{
		Identity:     newIdentity(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		IsActive:     true,
	}, nil
}

func (u *User) UpdateProfile(firstName, lastName string) error {
	if strings.TrimSpace(firstName) == "" {
		return ErrFirstNameRequired
	}
	if strings.TrimSpace(lastName) == "" {
		return ErrLastNameRequired
	}
	u.FirstName = firstName
	u.LastName = lastName
	u.touch()
	return nil
}

func (u *User) SetRefreshToken(token string, expiryUTC time.Time) {
	u.RefreshToken = token
	u.RefreshTokenExpiryUTC = expiryUTC
	u.touch()
}

func (u *User) ClearRefreshToken() {
	u.RefreshToken = ""
	u.RefreshTokenExpiryUTC = time.Time{}
	u.touch()
}

// RefreshTokenValid reports whether a refresh token is stored and unexpired.
func (u *User) RefreshTokenValid() bool {
	return u.RefreshToken != "" &&
		!u.RefreshTokenExpiryUTC.IsZero() &&
		u.RefreshTokenExpiryUTC.After(time.Now().UTC())
}

// Deactivate disables the account and revokes its refresh token.
func (u *User) Deactivate() {
	u.IsActive = false
	u.ClearRefreshToken()
}

func (u *User) AssignRole(role string) {
	u.Role = role
	u.touch()
}
