package application

import (
	"context"
	"sync"
	"time"

	"github.com/userhub/userhub/internal/domain/entity"
	"github.com/userhub/userhub/internal/domain/repository"
)

// memRepo is an in-memory UserRepository. All mutations run under one lock,
// which makes RotateRefreshToken a true atomic compare-and-swap. idReads
// counts GetByID calls so tests can observe cache hits and misses.
type memRepo struct {
	mu      sync.Mutex
	users   map[string]*entity.User
	idReads int
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[string]*entity.User)}
}

func clone(u *entity.User) *entity.User {
	cp := *u
	return &cp
}

func (r *memRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.users[u.ID] = clone(u)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idReads++
	if u, ok := r.users[id]; ok {
		return clone(u), nil
	}
	return nil, repository.ErrNotFound
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memRepo) GetByRefreshToken(_ context.Context, token string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.RefreshToken != "" && u.RefreshToken == token {
			return clone(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memRepo) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[u.ID] = clone(u)
	return nil
}

func (r *memRepo) RotateRefreshToken(_ context.Context, userID, current, next string, expiryUTC time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok || !u.IsActive || u.RefreshToken != current || !u.RefreshTokenExpiryUTC.After(time.Now().UTC()) {
		return repository.ErrRotationConflict
	}
	u.SetRefreshToken(next, expiryUTC)
	return nil
}

func (r *memRepo) readCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.idReads
}

var _ repository.UserRepository = (*memRepo)(nil)
