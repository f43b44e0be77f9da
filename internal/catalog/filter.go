package catalog

import (
	"shopfront/internal/product"
)

// FilterByCategory keeps products in categoryID. AllCategories and the empty
// id return the input unchanged. Products without a category only survive
// the "all" selection.
func FilterByCategory(products []product.Product, categoryID string) []product.Product {
	if categoryID == "" || categoryID == AllCategories {
		return products
	}

	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if p.InCategory(categoryID) {
			out = append(out, p)
		}
	}
	return out
}

// ApplyFilters keeps products matching every set option. Price bounds are
// inclusive.
func ApplyFilters(products []product.Product, opts FilterOptions) []product.Product {
	if opts.IsZero() {
		return products
	}

	categories := make(map[string]struct{}, len(opts.Categories))
	for _, c := range opts.Categories {
		categories[c] = struct{}{}
	}

	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if matches(p, opts, categories) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p product.Product, opts FilterOptions, categories map[string]struct{}) bool {
	if opts.PriceMin != nil && p.Price.LessThan(*opts.PriceMin) {
		return false
	}
	if opts.PriceMax != nil && p.Price.GreaterThan(*opts.PriceMax) {
		return false
	}
	if len(categories) > 0 {
		if p.CategoryID == nil {
			return false
		}
		if _, ok := categories[*p.CategoryID]; !ok {
			return false
		}
	}
	if opts.MinRating > 0 && p.Rating < opts.MinRating {
		return false
	}
	if opts.FreeShippingOnly && !p.FreeShipping {
		return false
	}
	return true
}

// PartitionFlashDeals splits products into flash deals and the rest,
// preserving relative order in both.
func PartitionFlashDeals(products []product.Product) (deals, standard []product.Product) {
	deals = []product.Product{}
	standard = []product.Product{}
	for _, p := range products {
		if p.IsFlashDeal {
			deals = append(deals, p)
		} else {
			standard = append(standard, p)
		}
	}
	return deals, standard
}

// Derive is the full pipeline a page renders: category, then filters, then
// sort.
func Derive(products []product.Product, params ViewParameters) []product.Product {
	out := FilterByCategory(products, params.Category)
	out = ApplyFilters(out, params.Filter)
	return SortProducts(out, params.Sort)
}
