// Package catalog derives the product grid a page displays from a raw product
// list: category selection, predicate filters and sort order. Functions here
// are pure: they never mutate their input, perform I/O or fail.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AllCategories selects every product regardless of category.
const AllCategories = "all"

type SortKey string

const (
	SortRecommended SortKey = "recommended"
	SortPriceLow    SortKey = "price-low"
	SortPriceHigh   SortKey = "price-high"
	SortRating      SortKey = "rating"
	SortPopular     SortKey = "popular"
	SortNewest      SortKey = "newest"
)

var sortAliases = map[string]SortKey{
	"recommended":           SortRecommended,
	"price-low":             SortPriceLow,
	"price-ascending":       SortPriceLow,
	"price-high":            SortPriceHigh,
	"price-descending":      SortPriceHigh,
	"rating":                SortRating,
	"rating-descending":     SortRating,
	"popular":               SortPopular,
	"popularity":            SortPopular,
	"popularity-descending": SortPopular,
	"newest":                SortNewest,
}

// ParseSortKey maps a user supplied sort name to a SortKey. Unknown names
// fall back to SortRecommended and report false.
func ParseSortKey(s string) (SortKey, bool) {
	key, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return SortRecommended, false
	}
	return key, true
}

func SortKeys() []SortKey {
	return []SortKey{SortRecommended, SortPriceLow, SortPriceHigh, SortRating, SortPopular, SortNewest}
}

// FilterOptions narrows a product list. The zero value keeps everything.
type FilterOptions struct {
	PriceMin         *decimal.Decimal
	PriceMax         *decimal.Decimal
	Categories       []string
	MinRating        float64
	FreeShippingOnly bool
}

func (f FilterOptions) IsZero() bool {
	return f.PriceMin == nil &&
		f.PriceMax == nil &&
		len(f.Categories) == 0 &&
		f.MinRating <= 0 &&
		!f.FreeShippingOnly
}

type ViewParameters struct {
	Category string
	Sort     SortKey
	Filter   FilterOptions
}

// DefaultViewParameters is what a page shows before the user touches any
// control.
func DefaultViewParameters() ViewParameters {
	return ViewParameters{Category: AllCategories, Sort: SortRecommended}
}
