package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fetchyfox.dev/internal/ids"
)

// SessionIssuer is the slice of the session manager the account service
// depends on. Token lifecycle is owned entirely by the session package.
type SessionIssuer interface {
	Issue(ctx context.Context, userID string) (string, error)
}

// Service orchestrates account creation, login, and credential verification.
// It holds no mutable state; all persistence goes through the injected Store.
type Service struct {
	accounts Store
	sessions SessionIssuer
	now      func() time.Time
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewService constructs a Service over the given store and session issuer.
func NewService(accounts Store, sessions SessionIssuer, opts ...ServiceOption) *Service {
	s := &Service{
		accounts: accounts,
		sessions: sessions,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new account and issues its first session token.
// A taken email surfaces ErrEmailTaken. The pre-insert lookup keeps the
// common case cheap; the store's unique constraint settles the race between
// two concurrent sign-ups with the same email.
func (s *Service) Create(ctx context.Context, email, password string) (Credentials, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return Credentials{}, err
	}
	if password == "" {
		return Credentials{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return Credentials{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Credentials{}, fmt.Errorf("lookup account: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return Credentials{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	acct := &Account{
		ID:           ids.NewUserID(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accounts.Create(ctx, acct); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return Credentials{}, ErrEmailTaken
		}
		return Credentials{}, fmt.Errorf("create account: %w", err)
	}

	token, err := s.sessions.Issue(ctx, acct.ID)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{UserID: acct.ID, Token: token}, nil
}

// Login verifies the given credentials and issues a fresh session token.
// An unknown email and a wrong password are indistinguishable to the caller:
// both surface ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (Credentials, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return Credentials{}, ErrInvalidCredentials
	}

	acct, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Credentials{}, ErrInvalidCredentials
		}
		return Credentials{}, fmt.Errorf("lookup account: %w", err)
	}
	if !VerifyPassword(acct.PasswordHash, password) {
		return Credentials{}, ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(ctx, acct.ID)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{UserID: acct.ID, Token: token}, nil
}

// VerifyCredentials reports whether the email/password pair matches a stored
// account. It fails closed: an absent account verifies false rather than
// erroring. Storage failures propagate so callers can distinguish "rejected"
// from "could not check".
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (bool, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return false, nil
	}
	acct, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("lookup account: %w", err)
	}
	return VerifyPassword(acct.PasswordHash, password), nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	return email, nil
}
