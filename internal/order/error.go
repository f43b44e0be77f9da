package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrEmptyUserID       = errors.New("order user id is required")
	ErrNegativeTotal     = errors.New("order total cannot be negative")
	ErrNoItems           = errors.New("order has no items")
	ErrInvalidItem       = errors.New("invalid order item")
)
