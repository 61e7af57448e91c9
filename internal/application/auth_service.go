package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/userhub/userhub/internal/domain/repository"
	"github.com/userhub/userhub/pkg/apperr"
	"github.com/userhub/userhub/pkg/helpers"
)

const (
	msgInvalidCredentials  = "Invalid email or password"
	msgInactiveAccount     = "User account is inactive"
	msgRefreshRequired     = "Refresh token is required"
	msgInvalidRefreshToken = "Invalid or expired refresh token"
)

// phantomHash is verified against when the email is unknown, so that path
// burns the same bcrypt cost as a wrong password and stays indistinguishable
// in timing.
var phantomHash = func() string {
	h, err := helpers.HashPassword("userhub.phantom.credential")
	if err != nil {
		panic(err)
	}
	return h
}()

// AuthService orchestrates the hasher, the token issuer, and the user store
// for login and refresh-token rotation.
type AuthService struct {
	Repo       repository.UserRepository
	JWT        *helpers.JWTManager
	Logger     *logrus.Logger
	RefreshTTL time.Duration
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, refreshTTL time.Duration) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Logger: logger, RefreshTTL: refreshTTL}
}

// Login verifies credentials and issues a token pair. A new refresh token is
// persisted on the user; unknown email and wrong password are answered
// identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthTokens, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			helpers.CheckPassword(phantomHash, password)
			return nil, apperr.Unauthorized(msgInvalidCredentials)
		}
		return nil, s.internal(err, "login: lookup by email failed")
	}
	if !helpers.CheckPassword(u.PasswordHash, password) {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Warn("failed login attempt")
		}
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}
	if !u.IsActive {
		return nil, apperr.Unauthorized(msgInactiveAccount)
	}

	tokens, refresh, err := s.issuePair(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, s.internal(err, "login: token issuance failed")
	}

	u.SetRefreshToken(refresh, time.Now().UTC().Add(s.RefreshTTL))
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, s.internal(err, "login: persisting refresh token failed")
	}
	return tokens, nil
}

// Refresh rotates the presented refresh token: the owning user is resolved
// from stored state, the token is checked for expiry, and the swap happens as
// one atomic conditional update. A rotated or replayed token is rejected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperr.BadRequest(msgRefreshRequired)
	}

	u, err := s.Repo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthorized(msgInvalidRefreshToken)
		}
		return nil, s.internal(err, "refresh: lookup by token failed")
	}
	if !u.IsActive || !u.RefreshTokenValid() {
		return nil, apperr.Unauthorized(msgInvalidRefreshToken)
	}

	tokens, next, err := s.issuePair(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, s.internal(err, "refresh: token issuance failed")
	}

	expiry := time.Now().UTC().Add(s.RefreshTTL)
	if err := s.Repo.RotateRefreshToken(ctx, u.ID, refreshToken, next, expiry); err != nil {
		if errors.Is(err, repository.ErrRotationConflict) {
			// Lost a race with a concurrent rotation, or the token was revoked
			// between lookup and swap.
			return nil, apperr.Unauthorized(msgInvalidRefreshToken)
		}
		return nil, s.internal(err, "refresh: rotation failed")
	}
	return tokens, nil
}

func (s *AuthService) issuePair(userID, email, role string) (*AuthTokens, string, error) {
	access, _, err := s.JWT.GenerateAccessToken(userID, email, role)
	if err != nil {
		return nil, "", err
	}
	refresh, err := s.JWT.NewRefreshToken()
	if err != nil {
		return nil, "", err
	}
	return &AuthTokens{
		AccessToken:      access,
		RefreshToken:     refresh,
		ExpiresInSeconds: int(s.JWT.AccessTTL().Seconds()),
		IssuedAtUTC:      time.Now().UTC(),
	}, refresh, nil
}

func (s *AuthService) internal(err error, msg string) error {
	if s.Logger != nil {
		s.Logger.WithError(err).Error(msg)
	}
	return apperr.Internal()
}
