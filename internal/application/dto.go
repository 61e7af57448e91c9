package application

import (
	"time"

	"github.com/userhub/userhub/internal/domain/entity"
)

// UserDTO is the read model served to clients and stored in the cache. It
// deliberately excludes the password hash and refresh token.
type UserDTO struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"isActive"`
	CreatedAtUTC time.Time  `json:"createdAtUtc"`
	UpdatedAtUTC *time.Time `json:"updatedAtUtc,omitempty"`
}

func toUserDTO(u *entity.User) *UserDTO {
	dto := &UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		IsActive:     u.IsActive,
		CreatedAtUTC: u.CreatedAtUTC,
	}
	if !u.UpdatedAtUTC.IsZero() {
		t := u.UpdatedAtUTC
		dto.UpdatedAtUTC = &t
	}
	return dto
}

// AuthTokens is the response of login and refresh.
type AuthTokens struct {
	AccessToken      string    `json:"accessToken"`
	RefreshToken     string    `json:"refreshToken"`
	ExpiresInSeconds int       `json:"expiresInSeconds"`
	IssuedAtUTC      time.Time `json:"issuedAtUtc"`
}
