package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionKeyPrefix is the Redis key prefix for cached sessions.
const sessionKeyPrefix = "session:"

// revokedMarker is stored under a logged-out token. Set never overwrites it,
// so a fill racing with Logout cannot resurrect the session.
const revokedMarker = "revoked"

// SessionCache is a read-through cache of token -> user id in front of the
// session table. A miss is (0, false, nil); errors mean the cache itself is
// unreachable and the caller falls back to MySQL.
type SessionCache interface {
	Get(ctx context.Context, token string) (userID int64, ok bool, err error)
	Set(ctx context.Context, token string, userID int64, ttl time.Duration) error
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// redisSessionCache implements SessionCache on a go-redis client.
type redisSessionCache struct {
	rdb *redis.Client
}

// NewRedisSessionCache wraps rdb. A nil client yields a cache that never
// hits, so callers need not special-case a disabled Redis.
func NewRedisSessionCache(rdb *redis.Client) SessionCache {
	if rdb == nil {
		return noopSessionCache{}
	}
	return &redisSessionCache{rdb: rdb}
}

func (c *redisSessionCache) Get(ctx context.Context, token string) (int64, bool, error) {
	val, err := c.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading session from redis: %w", err)
	}
	if val == revokedMarker {
		return 0, false, nil
	}

	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parsing cached user id %q: %w", val, err)
	}
	return id, true, nil
}

// Set caches the mapping unless the key already exists. ttl must not exceed
// the row's remaining lifetime so a cached entry never outlives its session.
func (c *redisSessionCache) Set(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := c.rdb.SetNX(ctx, sessionKeyPrefix+token, strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("caching session in redis: %w", err)
	}
	return nil
}

// Revoke replaces any cached entry for token with the revoked marker for
// ttl, which should cover the longest possible session lifetime.
func (c *redisSessionCache) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, sessionKeyPrefix+token, revokedMarker, ttl).Err(); err != nil {
		return fmt.Errorf("revoking session in redis: %w", err)
	}
	return nil
}

// noopSessionCache is used when Redis is not configured.
type noopSessionCache struct{}

func (noopSessionCache) Get(context.Context, string) (int64, bool, error) { return 0, false, nil }

func (noopSessionCache) Set(context.Context, string, int64, time.Duration) error { return nil }

func (noopSessionCache) Revoke(context.Context, string, time.Duration) error { return nil }
