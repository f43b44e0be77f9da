package product

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Validate checks a record read from the data service. Records that fail are
// dropped at the boundary so the view model only ever sees complete products.
func Validate(p Product) error {
	if p.ID <= 0 {
		return ErrInvalidID
	}
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	return validateFields(p.Price, p.OriginalPrice, p.Discount, p.Rating, p.Sold)
}

func validateNew(in NewProductInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(in.Image) == "" {
		return ErrEmptyImage
	}
	return validateFields(in.Price, in.OriginalPrice, in.Discount, in.Rating, in.Sold)
}

func validateUpdate(in UpdateProductInput) error {
	if in.ID <= 0 {
		return ErrInvalidID
	}
	if !in.HasChanges() {
		return ErrNoFieldsToUpdate
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return ErrEmptyTitle
	}
	if in.Image != nil && strings.TrimSpace(*in.Image) == "" {
		return ErrEmptyImage
	}
	if in.Price != nil && in.Price.IsNegative() {
		return ErrNegativePrice
	}
	if in.Price != nil && in.OriginalPrice != nil && in.OriginalPrice.LessThan(*in.Price) {
		return ErrOriginalBelowPrice
	}
	if in.Discount != nil && (*in.Discount < 0 || *in.Discount > 100) {
		return ErrDiscountOutOfRange
	}
	return nil
}

func validateFields(price decimal.Decimal, original *decimal.Decimal, discount *int, rating float64, sold int) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	if original != nil && original.LessThan(price) {
		return ErrOriginalBelowPrice
	}
	if discount != nil && (*discount < 0 || *discount > 100) {
		return ErrDiscountOutOfRange
	}
	if rating < 0 || rating > 5 {
		return ErrRatingOutOfRange
	}
	if sold < 0 {
		return ErrNegativeSold
	}
	return nil
}
