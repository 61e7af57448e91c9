package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/userhub/userhub/internal/domain/entity"
	"github.com/userhub/userhub/internal/domain/repository"
	"github.com/userhub/userhub/internal/infrastructure/cache"
	"github.com/userhub/userhub/pkg/apperr"
	"github.com/userhub/userhub/pkg/helpers"
	"github.com/userhub/userhub/pkg/mailer"
)

const userCacheTTL = 15 * time.Minute

func userCacheKey(id string) string { return "user:" + id }

// EmailEnqueuer publishes an email job for asynchronous delivery.
type EmailEnqueuer interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserService covers registration, the cache-aside read path, profile
// updates, and deactivation.
//
// Writes do not invalidate the cache entry: a stale read model may be served
// for up to the cache TTL after an update or deactivation. That window is an
// accepted trade for a simpler write path.
type UserService struct {
	Repo   repository.UserRepository
	Cache  cache.Store
	Logger *logrus.Logger
	Emails EmailEnqueuer // optional
}

func NewUserService(repo repository.UserRepository, store cache.Store, logger *logrus.Logger, emails EmailEnqueuer) *UserService {
	return &UserService{Repo: repo, Cache: store, Logger: logger, Emails: emails}
}

type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*UserDTO, error) {
	exists, err := s.Repo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, s.internal(err, "register: email lookup failed")
	}
	if exists {
		return nil, apperr.Domain("Email "+in.Email+" is already in use", "EMAIL_EXISTS")
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, s.internal(err, "register: hashing failed")
	}

	u, err := entity.NewUser(in.Email, in.FirstName, in.LastName, hash)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperr.Domain("Email "+in.Email+" is already in use", "EMAIL_EXISTS")
		}
		return nil, s.internal(err, "register: create failed")
	}

	s.enqueueWelcome(ctx, u)
	return toUserDTO(u), nil
}

// GetByID serves the user read model cache-aside: cache hit wins, a miss
// loads from the store and populates the cache for 15 minutes. Cache backend
// failures degrade to a miss and never fail the request.
func (s *UserService) GetByID(ctx context.Context, id string) (*UserDTO, error) {
	key := userCacheKey(id)

	var cached UserDTO
	hit, err := s.Cache.Get(ctx, key, &cached)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("cache read failed, falling through")
		}
	} else if hit {
		return &cached, nil
	}

	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User with ID " + id + " not found")
		}
		return nil, s.internal(err, "get user: store read failed")
	}

	dto := toUserDTO(u)
	if err := s.Cache.Set(ctx, key, dto, userCacheTTL); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("cache populate failed")
	}
	return dto, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id, firstName, lastName string) (*UserDTO, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User with ID " + id + " not found")
		}
		return nil, s.internal(err, "update profile: store read failed")
	}
	if err := u.UpdateProfile(firstName, lastName); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, s.internal(err, "update profile: store write failed")
	}
	return toUserDTO(u), nil
}

// Deactivate disables the account and revokes its refresh token, so a
// subsequent refresh with the old token fails.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("User with ID " + id + " not found")
		}
		return s.internal(err, "deactivate: store read failed")
	}
	u.Deactivate()
	if err := s.Repo.Update(ctx, u); err != nil {
		return s.internal(err, "deactivate: store write failed")
	}
	return nil
}

func (s *UserService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Emails == nil {
		return
	}
	job := mailer.EmailJob{
		To:      u.Email,
		Subject: "Welcome to userhub",
		Text:    "Hi " + u.FirstName + ", your account has been created.",
	}
	if err := s.Emails.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
	}
}

func (s *UserService) internal(err error, msg string) error {
	if s.Logger != nil {
		s.Logger.WithError(err).Error(msg)
	}
	return apperr.Internal()
}
