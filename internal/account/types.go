package account

import "time"

// Account represents a registered user identified by a unique email address.
// The core never updates or deletes accounts; they are written once at sign-up
// and read on every login.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Credentials is returned to a caller after a successful sign-up or login.
type Credentials struct {
	UserID string
	Token  string
}
