package ratelimit

import (
	"context"
	"time"

	"chirp/internal/platform/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindow trims entries older than the window, then admits when the
// remaining count is under the limit. Scores are unix millis
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
if redis.call('ZCARD', key) >= limit then
  return 0
end
redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return 1
`)

// Redis is a sliding window limiter backed by a sorted set per key
type Redis struct {
	rdb store.Redis
	cfg Config
	now func() time.Time
}

// NewRedis builds the limiter over any script capable redis seam
func NewRedis(rdb store.Redis, cfg Config) *Redis {
	return &Redis{rdb: rdb, cfg: cfg.normalized(), now: time.Now}
}

// Allow runs the window script atomically on the server
func (l *Redis) Allow(ctx context.Context, key string) (bool, error) {
	n, err := slidingWindow.Run(ctx, l.rdb,
		[]string{l.cfg.Prefix + ":" + key},
		l.now().UnixMilli(),
		l.cfg.Window.Milliseconds(),
		l.cfg.Limit,
		uuid.NewString(),
	).Int64()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
