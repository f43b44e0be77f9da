package address

import "errors"

var (
	ErrMissingName    = errors.New("shipping name is required")
	ErrMissingAddress = errors.New("shipping address is required")
	ErrMissingCity    = errors.New("shipping city is required")
	ErrMissingCountry = errors.New("shipping country is required")
	ErrMissingZip     = errors.New("shipping zip code is required")
	ErrInvalidZip     = errors.New("shipping zip code is too long")
)
