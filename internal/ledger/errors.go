package ledger

import "errors"

var (
	ErrClosed               = errors.New("ledger store is closed")
	ErrItemNotFound         = errors.New("item not found")
	ErrDistributionNotFound = errors.New("distribution not found")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInsufficientQuantity = errors.New("insufficient quantity available")
	ErrAlreadyReturned      = errors.New("distribution already returned")
)
