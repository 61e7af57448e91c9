package application

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhub/userhub/internal/infrastructure/cache"
	"github.com/userhub/userhub/pkg/apperr"
)

type capturingEnqueuer struct {
	published []any
}

func (c *capturingEnqueuer) PublishJSON(_ context.Context, body any) error {
	c.published = append(c.published, body)
	return nil
}

func newCachedUserService(t *testing.T) (*UserService, *memRepo, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	repo := newMemRepo()
	svc := NewUserService(repo, cache.NewRedis(rdb), quietLogger(), nil)
	return svc, repo, mr
}

func register(t *testing.T, svc *UserService, email string) *UserDTO {
	t.Helper()
	dto, err := svc.Register(context.Background(), RegisterInput{
		Email:     email,
		FirstName: "John",
		LastName:  "Doe",
		Password:  "Abcdef12",
	})
	require.NoError(t, err)
	return dto
}

func TestRegister(t *testing.T) {
	svc, repo, _ := newCachedUserService(t)

	dto := register(t, svc, "a@x.com")
	assert.NotEmpty(t, dto.ID)
	assert.Equal(t, "a@x.com", dto.Email)
	assert.Equal(t, "User", dto.Role)
	assert.True(t, dto.IsActive)

	// The stored aggregate holds a bcrypt digest, not the plaintext.
	stored, err := repo.GetByID(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "Abcdef12", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newCachedUserService(t)
	register(t, svc, "a@x.com")

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "a@x.com", FirstName: "Jane", LastName: "Smith", Password: "Abcdef12",
	})
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 400, ae.Status)
	assert.Equal(t, "EMAIL_EXISTS", ae.Code)
}

func TestRegisterEnqueuesWelcomeEmail(t *testing.T) {
	repo := newMemRepo()
	enq := &capturingEnqueuer{}
	svc := NewUserService(repo, cache.NewNoop(), quietLogger(), enq)

	register(t, svc, "a@x.com")
	require.Len(t, enq.published, 1)
}

func TestGetByIDCacheAside(t *testing.T) {
	svc, repo, mr := newCachedUserService(t)
	dto := register(t, svc, "a@x.com")

	base := repo.readCount()

	// First read misses and populates the cache.
	got1, err := svc.GetByID(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, base+1, repo.readCount())
	assert.True(t, mr.Exists("user:"+dto.ID))

	// Second read within the TTL is served from cache, no store read.
	got2, err := svc.GetByID(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, base+1, repo.readCount())
	assert.Equal(t, got1, got2)

	// Once the TTL elapses the store is consulted again.
	mr.FastForward(16 * time.Minute)
	_, err = svc.GetByID(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, base+2, repo.readCount())
}

func TestGetByIDCachedValueExcludesSecrets(t *testing.T) {
	svc, _, mr := newCachedUserService(t)
	dto := register(t, svc, "a@x.com")

	_, err := svc.GetByID(context.Background(), dto.ID)
	require.NoError(t, err)

	raw, err := mr.Get("user:" + dto.ID)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	assert.NotContains(t, m, "passwordHash")
	assert.NotContains(t, m, "refreshToken")
	assert.NotContains(t, raw, "$2") // no bcrypt digest leaked
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _, _ := newCachedUserService(t)

	_, err := svc.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 404, ae.Status)
}

func TestGetByIDNoopCacheAlwaysMisses(t *testing.T) {
	repo := newMemRepo()
	svc := NewUserService(repo, cache.NewNoop(), quietLogger(), nil)
	dto := register(t, svc, "a@x.com")

	base := repo.readCount()
	for i := 0; i < 3; i++ {
		_, err := svc.GetByID(context.Background(), dto.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, base+3, repo.readCount())
}

func TestGetByIDCacheBackendDownDegradesToMiss(t *testing.T) {
	svc, repo, mr := newCachedUserService(t)
	dto := register(t, svc, "a@x.com")

	mr.Close()

	base := repo.readCount()
	got, err := svc.GetByID(context.Background(), dto.ID)
	require.NoError(t, err, "cache outage must not fail the request")
	assert.Equal(t, dto.ID, got.ID)
	assert.Equal(t, base+1, repo.readCount())
}

func TestUpdateProfileServesStaleCacheUntilTTL(t *testing.T) {
	svc, _, _ := newCachedUserService(t)
	dto := register(t, svc, "a@x.com")

	first, err := svc.GetByID(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", first.FirstName)

	updated, err := svc.UpdateProfile(context.Background(), dto.ID, "Jane", "Smith")
	require.NoError(t, err)
	assert.Equal(t, "Jane", updated.FirstName)

	// Writes do not invalidate: the read path keeps serving the old entry.
	cached, err := svc.GetByID(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", cached.FirstName)
}

func TestDeactivate(t *testing.T) {
	svc, repo, _ := newCachedUserService(t)
	dto := register(t, svc, "a@x.com")

	u, err := repo.GetByID(context.Background(), dto.ID)
	require.NoError(t, err)
	u.SetRefreshToken("tok", time.Now().UTC().Add(time.Hour))
	require.NoError(t, repo.Update(context.Background(), u))

	require.NoError(t, svc.Deactivate(context.Background(), dto.ID))

	stored, err := repo.GetByID(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Empty(t, stored.RefreshToken)
}
