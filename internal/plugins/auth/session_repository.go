package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/keyxmakerx/fitcoach/internal/apperror"
)

// SessionRepository defines the data access contract for session rows.
// The session manager is its only writer.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	// FindActive returns the session for token if it expires after now.
	FindActive(ctx context.Context, token string, now time.Time) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// sessionRepository implements SessionRepository with MySQL queries.
type sessionRepository struct {
	db DBTX
}

// NewSessionRepository creates a session repository backed by the given DB pool.
func NewSessionRepository(db DBTX) SessionRepository {
	return &sessionRepository{db: db}
}

// Create inserts a session row. A primary-key clash on token is reported
// as errTokenCollision so the caller can mint a fresh token.
func (r *sessionRepository) Create(ctx context.Context, s *Session) error {
	query := `INSERT INTO sessions (token, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, s.Token, s.UserID, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		if isDuplicateEntry(err) {
			return errTokenCollision
		}
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// FindActive looks up a non-expired session by token.
// Returns apperror.NotFound for unknown or expired tokens.
func (r *sessionRepository) FindActive(ctx context.Context, token string, now time.Time) (*Session, error) {
	query := `SELECT token, user_id, created_at, expires_at
	          FROM sessions WHERE token = ? AND expires_at > ?`

	s := &Session{}
	err := r.db.QueryRowContext(ctx, query, token, now).Scan(
		&s.Token,
		&s.UserID,
		&s.CreatedAt,
		&s.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return s, nil
}

// Delete removes the session row for token. Deleting an unknown token is
// not an error.
func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// DeleteExpired purges every session whose expiry is at or before now and
// returns how many rows were removed.
func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting expired sessions: %w", err)
	}
	return n, nil
}
