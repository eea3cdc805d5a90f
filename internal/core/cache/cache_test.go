package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"diet-planner/internal/infrastructure/config"
	"diet-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig(maxSize int) config.CacheConfig {
	return config.CacheConfig{
		Enabled: true,
		Backend: config.CacheBackendMemory,
		MaxSize: maxSize,
		TTL:     time.Minute,
	}
}

func TestManager_GetSet(t *testing.T) {
	m := NewManager(memoryConfig(10))
	defer m.Close()
	ctx := context.Background()

	_, err := m.Get(ctx, "recommendations", "k1")
	assert.True(t, errors.Is(err, common.ErrCacheMiss))

	require.NoError(t, m.Set(ctx, "recommendations", "k1", "v1"))
	got, err := m.Get(ctx, "recommendations", "k1")
	require.NoError(t, err)
	assert.Equal(t, "v1", got)

	_, err = m.Get(ctx, "summary", "k1")
	assert.True(t, errors.Is(err, common.ErrCacheMiss), "namespaces must not collide")

	stats := m.Stats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(2), stats["misses"])
	assert.Equal(t, 1, stats["size"])
}

func TestManager_Expiry(t *testing.T) {
	m := NewManager(memoryConfig(10))
	defer m.Close()
	ctx := context.Background()

	now := time.Now()
	m.now = func() time.Time { return now }
	require.NoError(t, m.Set(ctx, "ns", "k", "v"))

	now = now.Add(2 * time.Minute)
	_, err := m.Get(ctx, "ns", "k")

	assert.True(t, errors.Is(err, common.ErrCacheMiss))
	assert.Equal(t, int64(1), m.Stats()["evictions"])
	assert.Equal(t, 0, m.Stats()["size"])
}

func TestManager_EvictsLeastUsed(t *testing.T) {
	m := NewManager(memoryConfig(2))
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "ns", "a", "1"))
	require.NoError(t, m.Set(ctx, "ns", "b", "2"))
	_, err := m.Get(ctx, "ns", "a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "ns", "c", "3"))

	_, err = m.Get(ctx, "ns", "b")
	assert.True(t, errors.Is(err, common.ErrCacheMiss), "b was least used")
	_, err = m.Get(ctx, "ns", "a")
	assert.NoError(t, err)
	_, err = m.Get(ctx, "ns", "c")
	assert.NoError(t, err)
}

func TestManager_OverwriteAtCapacity(t *testing.T) {
	m := NewManager(memoryConfig(1))
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "ns", "a", "1"))
	require.NoError(t, m.Set(ctx, "ns", "a", "2"))

	got, err := m.Get(ctx, "ns", "a")
	require.NoError(t, err)
	assert.Equal(t, "2", got)
	assert.Equal(t, int64(0), m.Stats()["evictions"])
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, config.CacheConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = New(ctx, memoryConfig(5))
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, config.CacheBackendMemory, s.Stats()["backend"])
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())

	_, err = New(ctx, config.CacheConfig{Enabled: true, Backend: "memcached"})
	assert.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()

	cfg := config.CacheConfig{Enabled: true, Backend: config.CacheBackendRedis, TTL: time.Minute}
	cfg.Redis.Addr = addr
	s, err := NewRedisStore(ctx, cfg)
	require.NoError(t, err)
	defer s.Close()

	key := common.GenerateUUID()
	_, err = s.Get(ctx, "test", key)
	assert.True(t, errors.Is(err, common.ErrCacheMiss))

	require.NoError(t, s.Set(ctx, "test", key, "value"))
	got, err := s.Get(ctx, "test", key)
	require.NoError(t, err)
	assert.Equal(t, "value", got)
	assert.Equal(t, int64(1), s.Stats()["hits"])
}
