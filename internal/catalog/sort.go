package catalog

import (
	"sort"

	"shopfront/internal/product"
)

// SortProducts returns a sorted copy. The sort is stable so ties keep their
// input order, which also makes it idempotent. SortRecommended and unknown
// keys keep the input order.
func SortProducts(products []product.Product, key SortKey) []product.Product {
	out := make([]product.Product, len(products))
	copy(out, products)

	less := lessFunc(out, key)
	if less == nil {
		return out
	}
	sort.SliceStable(out, less)
	return out
}

func lessFunc(ps []product.Product, key SortKey) func(i, j int) bool {
	switch key {
	case SortPriceLow:
		return func(i, j int) bool { return ps[i].Price.LessThan(ps[j].Price) }
	case SortPriceHigh:
		return func(i, j int) bool { return ps[i].Price.GreaterThan(ps[j].Price) }
	case SortRating:
		return func(i, j int) bool { return ps[i].Rating > ps[j].Rating }
	case SortPopular:
		return func(i, j int) bool { return ps[i].Sold > ps[j].Sold }
	case SortNewest:
		return func(i, j int) bool { return ps[i].CreatedAt.After(ps[j].CreatedAt) }
	default:
		return nil
	}
}
