package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/userhub/userhub/internal/domain/entity"
	"github.com/userhub/userhub/internal/domain/repository"
)

const uniqueViolation = "23505"

const userColumns = `id, email, first_name, last_name, password_hash, role, is_active,
	refresh_token, refresh_token_expires_at, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, first_name, last_name, password_hash, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, u.ID, u.Email, u.FirstName, u.LastName, u.PasswordHash, u.Role, u.IsActive, u.CreatedAtUTC)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicateEmail
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) GetByRefreshToken(ctx context.Context, token string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE refresh_token = $1`, token)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u := &entity.User{}
	var refreshToken *string
	var refreshExpiry, updatedAt *time.Time

	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.Role,
		&u.IsActive, &refreshToken, &refreshExpiry, &u.CreatedAtUTC, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if refreshToken != nil {
		u.RefreshToken = *refreshToken
	}
	if refreshExpiry != nil {
		u.RefreshTokenExpiryUTC = refreshExpiry.UTC()
	}
	if updatedAt != nil {
		u.UpdatedAtUTC = updatedAt.UTC()
	}
	return u, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	// Refresh token and expiry go NULL together.
	var refreshToken *string
	var refreshExpiry *time.Time
	if u.RefreshToken != "" {
		refreshToken = &u.RefreshToken
		refreshExpiry = &u.RefreshTokenExpiryUTC
	}

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $2, first_name = $3, last_name = $4, password_hash = $5, role = $6,
		    is_active = $7, refresh_token = $8, refresh_token_expires_at = $9, updated_at = $10
		WHERE id = $1
	`, u.ID, u.Email, u.FirstName, u.LastName, u.PasswordHash, u.Role,
		u.IsActive, refreshToken, refreshExpiry, u.UpdatedAtUTC)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// RotateRefreshToken swaps current for next in one conditional statement so
// concurrent rotations of the same token have exactly one winner.
func (r *UserRepository) RotateRefreshToken(ctx context.Context, userID, current, next string, expiryUTC time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET refresh_token = $3, refresh_token_expires_at = $4, updated_at = now()
		WHERE id = $1 AND is_active AND refresh_token = $2 AND refresh_token_expires_at > now()
	`, userID, current, next, expiryUTC)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrRotationConflict
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
