package account

import "errors"

var (
	ErrInvalidToken  = errors.New("tracking token is unknown or malformed")
	ErrAlreadyLinked = errors.New("tracking token already used to create an account")
	ErrAccountExists = errors.New("an account already exists for this email")
)
