package service

import "errors"

// ValidationError marks a request the caller can fix. Controllers map it to
// a 400; everything else is logged and reported generically.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationErr(reason string) error { return &ValidationError{Reason: reason} }

// IsValidation reports whether err is caller-correctable.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrInvalidCredentials covers both unknown email and wrong password so the
// two cases are indistinguishable to a caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailTaken is returned by Register when the email already has an account.
var ErrEmailTaken = errors.New("an account with this email already exists")
