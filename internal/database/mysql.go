// Package database provides connection setup for MySQL/MariaDB and Redis.
// Both connections are created once at startup and shared across the
// application via dependency injection. This package owns the connection
// lifecycle (open, configure pool, ping, close).
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// MySQL driver -- imported for side effect of registering the driver.
	_ "github.com/go-sql-driver/mysql"

	"github.com/keyxmakerx/fitcoach/internal/config"
)

// pinger is the subset of *sql.DB used by the startup retry loop.
type pinger interface {
	PingContext(ctx context.Context) error
}

// retryPolicy controls how long startup waits for the database.
type retryPolicy struct {
	attempts    int
	backoff     time.Duration
	maxBackoff  time.Duration
	pingTimeout time.Duration
}

// startupRetry is used by NewMySQL. The database container is frequently
// still initialising when the app container starts under Docker Compose.
var startupRetry = retryPolicy{
	attempts:    10,
	backoff:     time.Second,
	maxBackoff:  30 * time.Second,
	pingTimeout: 5 * time.Second,
}

// NewMySQL opens a MySQL connection pool configured with the settings from
// cfg and blocks until the server answers a ping or the retry budget runs out.
func NewMySQL(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening mysql connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := pingWithRetry(ctx, db, startupRetry); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// pingWithRetry pings p until it succeeds, the attempts are exhausted, or
// ctx is cancelled. Backoff doubles after each failure up to maxBackoff.
func pingWithRetry(ctx context.Context, p pinger, policy retryPolicy) error {
	backoff := policy.backoff
	var pingErr error

	for attempt := 1; attempt <= policy.attempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, policy.pingTimeout)
		pingErr = p.PingContext(pingCtx)
		cancel()

		if pingErr == nil {
			return nil
		}
		if attempt == policy.attempts {
			break
		}

		slog.Warn("mysql not ready, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", policy.attempts),
			slog.Duration("backoff", backoff),
			slog.Any("error", pingErr),
		)

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for mysql: %w", ctx.Err())
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, policy.maxBackoff)
	}

	return fmt.Errorf("pinging mysql after %d attempts: %w", policy.attempts, pingErr)
}
