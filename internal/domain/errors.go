package domain

import "errors"

var (
	// ErrEmailTaken is returned when registering with an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so that login failures never reveal which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers every token verification failure: bad
	// signature, malformed structure, expiry, unparseable subject.
	ErrInvalidToken = errors.New("invalid token")

	// ErrNotFound is returned when a record does not exist, and also when
	// it exists but the caller is not its author. The two cases are
	// deliberately indistinguishable.
	ErrNotFound = errors.New("not found")
)
