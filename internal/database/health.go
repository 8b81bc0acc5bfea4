package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"
)

// Health reports connectivity of the shared stores for the /healthz probe.
type Health struct {
	db    *sql.DB
	redis *redis.Client
}

// NewHealth builds a checker. rdb may be nil when the cache is disabled.
func NewHealth(db *sql.DB, rdb *redis.Client) *Health {
	return &Health{db: db, redis: rdb}
}

// Check pings every configured store and returns a per-store status map
// plus whether all of them answered.
func (h *Health) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{"mysql": "ok"}
	healthy := true

	if err := h.db.PingContext(ctx); err != nil {
		status["mysql"] = "unavailable"
		healthy = false
	}

	if h.redis != nil {
		status["redis"] = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			status["redis"] = "unavailable"
			healthy = false
		}
	}

	return status, healthy
}
