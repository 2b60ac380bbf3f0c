package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`)

// RedisLimiter shares counters between instances. When Redis fails the
// decision comes from the in-memory fallback.
type RedisLimiter struct {
	client   redis.Scripter
	window   time.Duration
	prefix   string
	timeout  time.Duration
	fallback *InMemoryLimiter
	logger   *slog.Logger
}

func NewRedis(client redis.Scripter, window time.Duration, logger *slog.Logger) *RedisLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisLimiter{
		client:   client,
		window:   window,
		prefix:   "rl:track:",
		timeout:  250 * time.Millisecond,
		fallback: NewInMemory(window),
		logger:   logger.With("component", "ratelimit"),
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int) Decision {
	if limit <= 0 {
		limit = 1
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	res, err := fixedWindowScript.Run(ctx, l.client, []string{l.prefix + key}, l.window.Milliseconds()).Int64Slice()
	if err != nil || len(res) < 2 {
		l.logger.WarnContext(ctx, "redis limiter unavailable, counting in memory", "error", err)
		return l.fallback.Allow(ctx, key, limit)
	}

	count, ttlMs := res[0], res[1]
	if ttlMs < 0 {
		ttlMs = l.window.Milliseconds()
	}

	return decide(int(count), limit, time.Now().UTC().Add(time.Duration(ttlMs)*time.Millisecond))
}
