package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// sweepTimeout bounds a single purge so a stuck query cannot pile up runs.
const sweepTimeout = 30 * time.Second

// SessionSweeper periodically deletes expired session rows. Expiry is
// already enforced on lookup; the sweeper only keeps the table small.
type SessionSweeper struct {
	sessions SessionRepository
	cron     *cron.Cron
	now      func() time.Time
}

// NewSessionSweeper schedules Sweep on the given cron spec (for example
// "@every 1h"). The schedule is validated here, not at Start.
func NewSessionSweeper(sessions SessionRepository, schedule string) (*SessionSweeper, error) {
	s := &SessionSweeper{
		sessions: sessions,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		now:      func() time.Time { return time.Now().UTC() },
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("parsing sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins running the schedule in the background.
func (s *SessionSweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for an in-flight sweep to finish or
// ctx to expire.
func (s *SessionSweeper) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Sweep deletes expired sessions once and returns the number removed.
func (s *SessionSweeper) Sweep(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}

func (s *SessionSweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	n, err := s.Sweep(ctx)
	if err != nil {
		slog.Error("session sweep failed", slog.Any("error", err))
		return
	}
	if n > 0 {
		slog.Info("expired sessions purged", slog.Int64("count", n))
	}
}
