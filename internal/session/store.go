package session

import "context"

// TokenStore owns the set of live tokens. A row exists if and only if that
// exact token was issued and not yet revoked.
type TokenStore interface {
	// Insert persists a freshly issued token for the user.
	Insert(ctx context.Context, userID, token string) error

	// ListByUser returns the live tokens for the user, unordered. An empty
	// result is not an error.
	ListByUser(ctx context.Context, userID string) ([]string, error)

	// DeleteExact removes the row matching both fields. Deleting zero rows
	// is success; logout is idempotent.
	DeleteExact(ctx context.Context, userID, token string) error
}
