package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the canonical catalog record. Optional columns are pointers.
type Product struct {
	ID            int64            `json:"id"`
	Title         string           `json:"title"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Discount      *int             `json:"discount,omitempty"`
	Image         string           `json:"image"`
	Rating        float64          `json:"rating"`
	Sold          int              `json:"sold"`
	CategoryID    *string          `json:"category_id,omitempty"`
	IsFlashDeal   bool             `json:"is_flash_deal"`
	FreeShipping  bool             `json:"free_shipping"`
	CreatedAt     time.Time        `json:"created_at"`
}

// InCategory reports whether the product belongs to categoryID.
// Products without a category belong to none.
func (p Product) InCategory(categoryID string) bool {
	return p.CategoryID != nil && *p.CategoryID == categoryID
}

type ListOptions struct {
	FlashDeal  *bool
	CategoryID *string
}

type NewProductInput struct {
	Title         string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	Discount      *int
	Image         string
	Rating        float64
	Sold          int
	CategoryID    *string
	IsFlashDeal   bool
	FreeShipping  bool
}

// UpdateProductInput carries only the fields to change.
type UpdateProductInput struct {
	ID            int64
	Title         *string
	Price         *decimal.Decimal
	OriginalPrice *decimal.Decimal
	Discount      *int
	Image         *string
	CategoryID    *string
	FreeShipping  *bool
}

func (in UpdateProductInput) HasChanges() bool {
	return in.Title != nil ||
		in.Price != nil ||
		in.OriginalPrice != nil ||
		in.Discount != nil ||
		in.Image != nil ||
		in.CategoryID != nil ||
		in.FreeShipping != nil
}
