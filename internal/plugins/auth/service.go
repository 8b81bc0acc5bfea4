package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/keyxmakerx/fitcoach/internal/apperror"
)

// maxTokenAttempts bounds re-minting after a token primary-key collision.
const maxTokenAttempts = 3

// AuthService defines the business logic contract for authentication.
// Handlers call these methods -- they never touch the repositories directly.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*Account, error)
	Login(ctx context.Context, input LoginInput) (token string, err error)
	Authenticate(ctx context.Context, sc SessionContext) (Identity, error)
	Logout(ctx context.Context, sc SessionContext) error
}

// authService implements AuthService with scrypt hashing and MySQL sessions.
// It holds no per-request state and is safe for concurrent use.
type authService struct {
	accounts   AccountRepository
	sessions   SessionRepository
	cache      SessionCache
	hasher     *Hasher
	sessionTTL time.Duration
	now        func() time.Time

	// dummySalt is hashed against on unknown usernames so a login for a
	// missing account costs the same as one with a wrong password.
	dummySalt []byte
}

// NewAuthService creates a new auth service with the given dependencies.
// cache may be nil.
func NewAuthService(accounts AccountRepository, sessions SessionRepository, cache SessionCache, hasher *Hasher, sessionTTL time.Duration) AuthService {
	if cache == nil {
		cache = noopSessionCache{}
	}
	dummy, err := GenerateSalt()
	if err != nil {
		// A fixed salt still equalises timing.
		dummy = make([]byte, saltLen)
	}
	return &authService{
		accounts:   accounts,
		sessions:   sessions,
		cache:      cache,
		hasher:     hasher,
		sessionTTL: sessionTTL,
		now:        func() time.Time { return time.Now().UTC() },
		dummySalt:  dummy,
	}
}

// Signup validates the input, hashes the password under a fresh salt and
// persists the account. A taken username yields ErrDuplicateUsername.
func (s *authService) Signup(ctx context.Context, input SignupInput) (*Account, error) {
	if err := validateSignup(input); err != nil {
		return nil, err
	}

	salt, err := GenerateSalt()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	hash, err := s.hasher.Derive([]byte(input.Password), salt)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	id, err := s.accounts.Create(ctx, input.Username, hash, salt)
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return nil, ErrDuplicateUsername
		}
		return nil, apperror.NewInternal(fmt.Errorf("creating account: %w", err))
	}

	slog.Info("account created",
		slog.Int64("user_id", id),
		slog.String("username", input.Username),
	)

	return &Account{
		ID:           id,
		Username:     input.Username,
		PasswordHash: hash,
		PasswordSalt: salt,
		CreatedAt:    s.now(),
	}, nil
}

// Login verifies the credentials and issues a new session token. Unknown
// usernames and wrong passwords both return ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, input LoginInput) (string, error) {
	// Rejects that skip the lookup still pay one scrypt derivation so every
	// failed login costs the same.
	if input.Username == "" || input.Password == "" || utf8.RuneCountInString(input.Username) > maxUsernameLen {
		s.burnDerivation(input.Password)
		return "", ErrInvalidCredentials
	}

	acct, err := s.accounts.FindByUsername(ctx, input.Username)
	if err != nil {
		if apperror.IsNotFound(err) {
			s.burnDerivation(input.Password)
			return "", ErrInvalidCredentials
		}
		return "", apperror.NewInternal(fmt.Errorf("finding account: %w", err))
	}

	if !s.hasher.Verify([]byte(input.Password), acct.PasswordSalt, acct.PasswordHash) {
		slog.Debug("login rejected", slog.Int64("user_id", acct.ID))
		return "", ErrInvalidCredentials
	}

	token, err := s.createSession(ctx, acct.ID)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("creating session: %w", err))
	}

	slog.Info("user logged in", slog.Int64("user_id", acct.ID))
	return token, nil
}

// burnDerivation runs scrypt against the dummy salt and discards the result.
func (s *authService) burnDerivation(password string) {
	_, _ = s.hasher.Derive([]byte(password), s.dummySalt)
}

// Authenticate resolves the token in sc to an identity. Missing, malformed,
// unknown and expired tokens all resolve to Anonymous without error; only
// store failures are returned.
func (s *authService) Authenticate(ctx context.Context, sc SessionContext) (Identity, error) {
	if !wellFormedToken(sc.Token) {
		return Anonymous, nil
	}

	userID, hit, err := s.cache.Get(ctx, sc.Token)
	if err != nil {
		slog.Warn("session cache read failed", slog.Any("error", err))
	}
	if hit {
		return Authenticated(userID), nil
	}

	sess, err := s.sessions.FindActive(ctx, sc.Token, s.now())
	if err != nil {
		if apperror.IsNotFound(err) {
			return Anonymous, nil
		}
		return Anonymous, apperror.NewInternal(fmt.Errorf("looking up session: %w", err))
	}

	if err := s.cache.Set(ctx, sess.Token, sess.UserID, sess.ExpiresAt.Sub(s.now())); err != nil {
		slog.Warn("session cache fill failed", slog.Any("error", err))
	}
	return Authenticated(sess.UserID), nil
}

// Logout removes the session for the token in sc. Unknown tokens are a no-op.
func (s *authService) Logout(ctx context.Context, sc SessionContext) error {
	if !wellFormedToken(sc.Token) {
		return nil
	}

	// The marker outlives any session row, and cache fills never overwrite
	// it, so an Authenticate that read the row before the delete cannot
	// re-cache the token.
	if err := s.cache.Revoke(ctx, sc.Token, s.sessionTTL); err != nil {
		slog.Warn("session cache revocation failed", slog.Any("error", err))
	}
	if err := s.sessions.Delete(ctx, sc.Token); err != nil {
		return apperror.NewInternal(fmt.Errorf("deleting session: %w", err))
	}
	return nil
}

// createSession mints a token and persists it with the configured TTL.
func (s *authService) createSession(ctx context.Context, userID int64) (string, error) {
	for attempt := 1; attempt <= maxTokenAttempts; attempt++ {
		token, err := generateSessionToken()
		if err != nil {
			return "", err
		}

		now := s.now()
		err = s.sessions.Create(ctx, &Session{
			Token:     token,
			UserID:    userID,
			CreatedAt: now,
			ExpiresAt: now.Add(s.sessionTTL),
		})
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, errTokenCollision) {
			return "", err
		}
		slog.Warn("session token collision, re-minting", slog.Int("attempt", attempt))
	}
	return "", fmt.Errorf("could not mint a unique token after %d attempts", maxTokenAttempts)
}
