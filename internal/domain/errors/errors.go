package errors

import "errors"

var (
	ErrAlreadyExists          = errors.New("already exists")
	ErrNotFound               = errors.New("not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidCostBreakdown   = errors.New("cost breakdown must sum to 100")
	ErrInvalidPhone           = errors.New("invalid phone number")
	ErrForbidden              = errors.New("forbidden")
	ErrDeviceNotRegistered    = errors.New("device not registered")
	ErrItemNotOwnedByOrder    = errors.New("item does not belong to order")
	ErrOrderWithoutItemsEmpty = errors.New("order requires a cart link or at least one item")
)
