package account

import "errors"

var (
	ErrNotFound           = errors.New("account: not found")
	ErrEmailTaken         = errors.New("account: email already taken")
	ErrInvalidCredentials = errors.New("account: invalid credentials")
	ErrInvalidInput       = errors.New("account: invalid input")
)
