package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/rueidis"
)

// incrWindow bumps the counter and opens the window on the first hit in one
// atomic step, so a counter never outlives its window.
var incrWindow = rueidis.NewLuaScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisLimiter shares fixed-window counters between instances.
type RedisLimiter struct {
	client rueidis.Client
	prefix string
	limit  int64
	window time.Duration
}

func NewRedisLimiter(client rueidis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := incrWindow.Exec(ctx, l.client, []string{l.prefix + key}, []string{l.windowSeconds()}).AsInt64()
	if err != nil {
		return false, err
	}
	return count <= l.limit, nil
}

func (l *RedisLimiter) windowSeconds() string {
	seconds := int64(l.window / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return strconv.FormatInt(seconds, 10)
}

// NewRedisClient connects to a single Redis node.
func NewRedisClient(addr, password string) (rueidis.Client, error) {
	return rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{addr},
		Password:    password,
	})
}
