package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedis connects to REDIS_TEST_ADDR and skips when it is unset.
func newTestRedis(t *testing.T) *RedisLimiter {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client, err := NewRedisClient(addr, os.Getenv("REDIS_TEST_PASSWORD"))
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return NewRedisLimiter(client, "test:"+uuid.NewString()+":", 2, 30*time.Second)
}

func TestRedisLimiter_CounterAlwaysExpires(t *testing.T) {
	l := newTestRedis(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	ttl, err := l.client.Do(ctx, l.client.B().Ttl().Key(l.prefix+"10.0.0.1").Build()).AsInt64()
	require.NoError(t, err)
	assert.Greater(t, ttl, int64(0))
	assert.LessOrEqual(t, ttl, int64(30))
}

func TestRedisLimiter_WindowSeconds(t *testing.T) {
	assert.Equal(t, "60", (&RedisLimiter{window: time.Minute}).windowSeconds())
	assert.Equal(t, "1", (&RedisLimiter{window: 10 * time.Millisecond}).windowSeconds())
}
