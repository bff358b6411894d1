package services

import "errors"

// Expected failures. Callers branch on them with errors.Is; anything else
// returned by the store is an infrastructure fault.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("sign in required")
	ErrUnauthorized    = errors.New("not allowed")
	ErrValidation      = errors.New("invalid input")

	ErrBanned          = errors.New("account is banned")
	ErrBadCreds        = errors.New("invalid email or password")
	ErrPaymentDeclined = errors.New("payment declined")
)
