package cached

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "recruit-auth-service/internal/domain/user"
	pkgerrors "recruit-auth-service/pkg/errors"
)

// countingRepo counts store hits behind the cache layer.
type countingRepo struct {
	users    map[string]*domain.User
	getCalls atomic.Int64
}

func (r *countingRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *countingRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.getCalls.Add(1)
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, pkgerrors.ErrUserNotFound
}

func (r *countingRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// mapCache is an in-process UserCache for exercising the cache-aside path.
type mapCache struct {
	entries map[string]*domain.User
}

func (c *mapCache) Get(ctx context.Context, id string) (*domain.User, error) {
	return c.entries[id], nil
}

func (c *mapCache) Set(ctx context.Context, u *domain.User) error {
	c.entries[u.ID] = u
	return nil
}

func (c *mapCache) Delete(ctx context.Context, id string) error {
	delete(c.entries, id)
	return nil
}

func setupTest(t *testing.T) (*countingRepo, *mapCache, *CachedUserRepository) {
	db := &countingRepo{users: map[string]*domain.User{
		"id-1": {ID: "id-1", Email: "a@x.com", Name: "A"},
	}}
	c := &mapCache{entries: map[string]*domain.User{}}
	repo := NewCachedUserRepository(db, c, zaptest.NewLogger(t)).(*CachedUserRepository)
	return db, c, repo
}

func TestCachedUserRepository_GetByID_PopulatesCache(t *testing.T) {
	db, c, repo := setupTest(t)

	got, err := repo.GetByID(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, int64(1), db.getCalls.Load())
	assert.Contains(t, c.entries, "id-1")

	// Second read is served from the cache.
	_, err = repo.GetByID(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), db.getCalls.Load())
}

func TestCachedUserRepository_GetByID_NotFound(t *testing.T) {
	_, _, repo := setupTest(t)

	_, err := repo.GetByID(context.Background(), "absent")
	assert.ErrorIs(t, err, pkgerrors.ErrUserNotFound)
}

func TestCachedUserRepository_GetByEmail_BypassesCache(t *testing.T) {
	_, c, repo := setupTest(t)

	// Credential lookups always hit the store; the cache never sees them.
	got, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
	assert.Empty(t, c.entries)
}
