package dashboards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/keyxmakerx/fitcoach/internal/apperror"
)

// ProfileRepository loads dashboard owners. A user without the requested
// role is reported as not found.
type ProfileRepository interface {
	FindClient(ctx context.Context, userID int64) (*Profile, error)
	FindTrainer(ctx context.Context, userID int64) (*Profile, error)
}

// profileRepository implements ProfileRepository with MySQL queries.
type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a profile repository backed by the given DB pool.
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindClient(ctx context.Context, userID int64) (*Profile, error) {
	query := `SELECT u.user_id, u.username, u.created_at
	          FROM users u JOIN clients c ON c.user_id = u.user_id
	          WHERE u.user_id = ?`
	return r.find(ctx, query, userID, RoleClient)
}

func (r *profileRepository) FindTrainer(ctx context.Context, userID int64) (*Profile, error) {
	query := `SELECT u.user_id, u.username, u.created_at
	          FROM users u JOIN trainers t ON t.user_id = u.user_id
	          WHERE u.user_id = ?`
	return r.find(ctx, query, userID, RoleTrainer)
}

func (r *profileRepository) find(ctx context.Context, query string, userID int64, role Role) (*Profile, error) {
	p := &Profile{Role: role}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.Username, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound(fmt.Sprintf("%s not found", role))
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s %d: %w", role, userID, err)
	}
	return p, nil
}
