package account

import "context"

// Store describes persistence operations required for account records.
type Store interface {
	// Create inserts a new account row. Inserting an email that already
	// exists returns ErrEmailTaken.
	Create(ctx context.Context, a *Account) error

	// FindByEmail returns the account with the given email or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*Account, error)
}
