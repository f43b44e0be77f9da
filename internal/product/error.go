package product

import "errors"

var (
	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")

	// -- Validation & Input --
	ErrInvalidID          = errors.New("product id must be positive")
	ErrEmptyTitle         = errors.New("product title cannot be empty")
	ErrEmptyImage         = errors.New("product image cannot be empty")
	ErrNegativePrice      = errors.New("product price cannot be negative")
	ErrOriginalBelowPrice = errors.New("original price cannot be below price")
	ErrDiscountOutOfRange = errors.New("discount must be between 0 and 100")
	ErrRatingOutOfRange   = errors.New("rating must be between 0 and 5")
	ErrNegativeSold       = errors.New("units sold cannot be negative")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
)
