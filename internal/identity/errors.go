package identity

import "errors"

// Sign-in failure kinds, each surfaced with its own user-facing message.
var (
	// ErrUnknownAccount is returned when no account exists for the email.
	ErrUnknownAccount = errors.New("no account found for that email")
	// ErrInvalidCredentials is returned when the password is wrong.
	ErrInvalidCredentials = errors.New("password is incorrect")
	// ErrMalformedEmail is returned when the email address is malformed.
	ErrMalformedEmail = errors.New("email address is malformed")
	// ErrRateLimited is returned when the provider throttles sign-in
	// attempts. Wait before retrying.
	ErrRateLimited = errors.New("too many sign-in attempts — wait and retry")
)
