package cart

import "errors"

var (
	ErrInvalidLine = errors.New("invalid cart line")
	ErrCartEmpty   = errors.New("cart is empty")
)
