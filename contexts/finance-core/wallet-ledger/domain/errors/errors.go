package errors

import "errors"

var (
	ErrInvalidAccountID  = errors.New("invalid account id")
	ErrAccountExists     = errors.New("account already exists")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidAmount     = errors.New("amount must be a positive decimal")
	ErrInsufficientFunds = errors.New("insufficient funds")
)
