package auth

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/keyxmakerx/fitcoach/internal/apperror"
)

// erDupEntry is the MySQL/MariaDB error number for a unique key violation.
const erDupEntry = 1062

// AccountRepository defines the data access contract for accounts.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type AccountRepository interface {
	Create(ctx context.Context, username string, hash, salt []byte) (int64, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
	FindByID(ctx context.Context, id int64) (*Account, error)
}

// DBTX is the subset of *sql.DB the repositories need. *sql.Tx and
// sqlmock connections satisfy it too.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// accountRepository implements AccountRepository with hand-written MySQL queries.
type accountRepository struct {
	db DBTX
}

// NewAccountRepository creates an account repository backed by the given DB pool.
func NewAccountRepository(db DBTX) AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts a new account and returns its generated id. The unique
// index on username decides duplicates, so concurrent signups for the same
// name cannot both succeed.
func (r *accountRepository) Create(ctx context.Context, username string, hash, salt []byte) (int64, error) {
	query := `INSERT INTO users (username, password_hash, password_salt) VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		username,
		base64.StdEncoding.EncodeToString(hash),
		base64.StdEncoding.EncodeToString(salt),
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, fmt.Errorf("inserting user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted user id: %w", err)
	}
	return id, nil
}

// FindByUsername retrieves an account by username.
// Returns apperror.NotFound if no account has this username.
func (r *accountRepository) FindByUsername(ctx context.Context, username string) (*Account, error) {
	query := `SELECT user_id, username, password_hash, password_salt, created_at
	          FROM users WHERE username = ?`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, username))
}

// FindByID retrieves an account by id.
// Returns apperror.NotFound if no account has this id.
func (r *accountRepository) FindByID(ctx context.Context, id int64) (*Account, error) {
	query := `SELECT user_id, username, password_hash, password_salt, created_at
	          FROM users WHERE user_id = ?`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, id))
}

// scanAccount reads one users row and decodes the base64 credential columns.
func (r *accountRepository) scanAccount(row *sql.Row) (*Account, error) {
	var (
		acct    Account
		hashB64 string
		saltB64 string
	)
	err := row.Scan(&acct.ID, &acct.Username, &hashB64, &saltB64, &acct.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("account not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	if acct.PasswordHash, err = base64.StdEncoding.DecodeString(hashB64); err != nil {
		return nil, fmt.Errorf("decoding password hash for user %d: %w", acct.ID, err)
	}
	if acct.PasswordSalt, err = base64.StdEncoding.DecodeString(saltB64); err != nil {
		return nil, fmt.Errorf("decoding password salt for user %d: %w", acct.ID, err)
	}
	return &acct, nil
}

// isDuplicateEntry checks if a MySQL/MariaDB error is a duplicate key violation.
func isDuplicateEntry(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == erDupEntry
}
