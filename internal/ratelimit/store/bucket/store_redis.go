package bucket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"standsdir/internal/ratelimit/models"
)

const bucketKeyPrefix = "standsdir:ratelimit:"

// slidingWindowScript trims the sorted set to the window, then admits the
// request when there is room. Returns {allowed, count, oldest_ms}.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call("ZREMRANGEBYSCORE", key, "-inf", now - window)
local count = redis.call("ZCARD", key)
local allowed = 0
if count < limit then
	redis.call("ZADD", key, now, member)
	count = count + 1
	allowed = 1
end
redis.call("PEXPIRE", key, window)

local oldest = redis.call("ZRANGE", key, 0, 0, "WITHSCORES")
local oldestMs = now
if oldest[2] then
	oldestMs = tonumber(oldest[2])
end
return {allowed, count, oldestMs}
`)

// RedisStore shares sliding windows between replicas through Redis sorted
// sets keyed by bucket.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore constructs a Redis-backed bucket store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) Allow(ctx context.Context, key string, limit models.Limit) (*models.RateLimitResult, error) {
	now := s.now()
	res, err := slidingWindowScript.Run(ctx, s.client, []string{bucketKeyPrefix + key},
		now.UnixMilli(), limit.Window.Milliseconds(), limit.Requests, uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 3 {
		return nil, fmt.Errorf("rate limit script: unexpected reply length %d", len(res))
	}

	allowed, count := res[0] == 1, int(res[1])
	resetAt := time.UnixMilli(res[2]).Add(limit.Window)
	result := &models.RateLimitResult{
		Allowed:   allowed,
		Limit:     limit.Requests,
		Remaining: max(limit.Requests-count, 0),
		ResetAt:   resetAt,
	}
	if !allowed {
		result.RetryAfter = retryAfter(resetAt.Sub(now))
	}
	return result, nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, bucketKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("reset rate limit bucket: %w", err)
	}
	return nil
}
