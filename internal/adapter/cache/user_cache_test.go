package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "recruit-auth-service/internal/domain/user"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, mr
}

func testUser() *domain.User {
	return &domain.User{
		ID:           "id-1",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$hash",
		Name:         "A",
		Bio:          "recruiter",
		CreatedAt:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestRedisUserCache_SetAndGet(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	u := testUser()
	require.NoError(t, c.Set(context.Background(), u))

	// Verify raw payload under the expected key
	data, err := client.Get(context.Background(), "user:id-1").Bytes()
	require.NoError(t, err)

	var raw domain.User
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, u.Email, raw.Email)

	got, err := c.Get(context.Background(), "id-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.Bio, got.Bio)
	assert.True(t, u.CreatedAt.Equal(got.CreatedAt))
}

func TestRedisUserCache_Set_NilUser(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	err := c.Set(context.Background(), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot cache nil user")
}

func TestRedisUserCache_Get_Miss(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	got, err := c.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_TTLExpiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewRedisUserCache(client, time.Minute, zaptest.NewLogger(t))

	require.NoError(t, c.Set(context.Background(), testUser()))

	mr.FastForward(2 * time.Minute)

	got, err := c.Get(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_Delete(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	require.NoError(t, c.Set(context.Background(), testUser()))
	require.NoError(t, c.Delete(context.Background(), "id-1"))

	got, err := c.Get(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_Delete_Absent(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	assert.NoError(t, c.Delete(context.Background(), "never-cached"))
}
