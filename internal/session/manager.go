package session

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"
)

// Manager orchestrates token issuance, verification, and revocation. Signing
// is delegated to the Codec, persistence to the TokenStore.
type Manager struct {
	codec    *Codec
	store    TokenStore
	lifetime time.Duration
}

// ManagerOption configures Manager behavior.
type ManagerOption func(*Manager)

// WithLifetime overrides the default token lifetime.
func WithLifetime(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.lifetime = d
		}
	}
}

// NewManager constructs a Manager over the given codec and store.
func NewManager(codec *Codec, store TokenStore, opts ...ManagerOption) *Manager {
	m := &Manager{
		codec:    codec,
		store:    store,
		lifetime: DefaultLifetime,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Issue signs a new token for the user and records it in the live set, in
// that order. If the insert fails the signed token is discarded and the error
// surfaces: a token that was never durably recorded could never be revoked,
// so it must not reach the caller.
func (m *Manager) Issue(ctx context.Context, userID string) (string, error) {
	token, err := m.codec.Sign(userID, m.lifetime)
	if err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	if err := m.store.Insert(ctx, userID, token); err != nil {
		return "", fmt.Errorf("issue session: persist token: %w", err)
	}
	return token, nil
}

// Verify reports whether the token is both cryptographically valid and still
// present in the user's live set. The double-check makes revocation
// effective before natural expiry: a structurally valid, unexpired token that
// was deleted from the store is rejected.
func (m *Manager) Verify(ctx context.Context, userID, token string) (bool, error) {
	if !m.codec.Verify(token) {
		return false, nil
	}
	live, err := m.store.ListByUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("list sessions: %w", err)
	}
	for _, t := range live {
		if subtle.ConstantTimeCompare([]byte(t), []byte(token)) == 1 {
			return true, nil
		}
	}
	return false, nil
}

// Revoke removes the exact (user, token) pair from the live set. Revoking a
// token that was never issued, or was already revoked, succeeds.
func (m *Manager) Revoke(ctx context.Context, userID, token string) error {
	if err := m.store.DeleteExact(ctx, userID, token); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
