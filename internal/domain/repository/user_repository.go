package repository

import (
	"context"
	"errors"
	"time"

	"github.com/userhub/userhub/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a create would violate email uniqueness.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrRotationConflict is returned when a conditional refresh-token swap
	// matched no row: the presented token was already rotated, revoked, or expired.
	ErrRotationConflict = errors.New("refresh token no longer current")
)

// UserRepository defines persistence for the user aggregate.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByRefreshToken(ctx context.Context, token string) (*entity.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *entity.User) error

	// RotateRefreshToken atomically replaces current with next, but only while
	// current is still the stored, unexpired token of an active user. Exactly
	// one of several concurrent rotations of the same token can succeed; the
	// rest get ErrRotationConflict.
	RotateRefreshToken(ctx context.Context, userID, current, next string, expiryUTC time.Time) error
}
