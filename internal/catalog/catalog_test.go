package catalog

import (
	"testing"
	"time"

	"shopfront/internal/product"
	"shopfront/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(ps []product.Product) []int64 {
	out := make([]int64, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func moneyPtr(s string) *decimal.Decimal {
	d := money(s)
	return &d
}

func fixture() []product.Product {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return []product.Product{
		{ID: 1, Title: "Headphones", Price: money("20"), Rating: 4.0, Sold: 100, CategoryID: utils.StrPtr("electronics"), FreeShipping: true, CreatedAt: base},
		{ID: 2, Title: "T-Shirt", Price: money("10"), Rating: 4.8, Sold: 50, CategoryID: utils.StrPtr("fashion"), IsFlashDeal: true, CreatedAt: base.Add(48 * time.Hour)},
		{ID: 3, Title: "Mystery box", Price: money("15"), Rating: 4.0, Sold: 100, FreeShipping: true, CreatedAt: base.Add(24 * time.Hour)},
		{ID: 4, Title: "Lamp", Price: money("10"), Rating: 3.5, Sold: 7, CategoryID: utils.StrPtr("home"), IsFlashDeal: true, FreeShipping: true, CreatedAt: base.Add(-24 * time.Hour)},
	}
}

func TestSortProducts(t *testing.T) {
	two := []product.Product{
		{ID: 1, Price: money("20"), Rating: 4.0, Sold: 100},
		{ID: 2, Price: money("10"), Rating: 4.8, Sold: 50},
	}

	t.Run("Price ascending", func(t *testing.T) {
		key, ok := ParseSortKey("price-ascending")
		require.True(t, ok)
		assert.Equal(t, []int64{2, 1}, ids(SortProducts(two, key)))
	})

	t.Run("Rating descending", func(t *testing.T) {
		key, ok := ParseSortKey("rating-descending")
		require.True(t, ok)
		assert.Equal(t, []int64{2, 1}, ids(SortProducts(two, key)))
	})

	tests := []struct {
		name string
		key  SortKey
		want []int64
	}{
		{name: "recommended keeps input order", key: SortRecommended, want: []int64{1, 2, 3, 4}},
		{name: "unknown keeps input order", key: SortKey("cheapest-first"), want: []int64{1, 2, 3, 4}},
		{name: "price low is stable on ties", key: SortPriceLow, want: []int64{2, 4, 3, 1}},
		{name: "price high", key: SortPriceHigh, want: []int64{1, 3, 2, 4}},
		{name: "rating", key: SortRating, want: []int64{2, 1, 3, 4}},
		{name: "popular is stable on ties", key: SortPopular, want: []int64{1, 3, 2, 4}},
		{name: "newest", key: SortNewest, want: []int64{2, 3, 1, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SortProducts(fixture(), tt.key)))
		})
	}
}

func TestSortProducts_Idempotent(t *testing.T) {
	for _, key := range SortKeys() {
		once := SortProducts(fixture(), key)
		twice := SortProducts(once, key)
		assert.Equal(t, ids(once), ids(twice), "key %s", key)
	}
}

func TestSortProducts_DoesNotMutateInput(t *testing.T) {
	in := fixture()
	_ = SortProducts(in, SortPriceLow)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(in))
}

func TestFilterByCategory(t *testing.T) {
	t.Run("All returns input unchanged", func(t *testing.T) {
		in := fixture()
		assert.Equal(t, in, FilterByCategory(in, AllCategories))
	})

	t.Run("Electronics", func(t *testing.T) {
		assert.Equal(t, []int64{1}, ids(FilterByCategory(fixture(), "electronics")))
	})

	t.Run("Uncategorised products excluded", func(t *testing.T) {
		for _, p := range FilterByCategory(fixture(), "home") {
			assert.NotNil(t, p.CategoryID)
		}
	})

	t.Run("Unknown category", func(t *testing.T) {
		res := FilterByCategory(fixture(), "garden")
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})
}

func TestPartitionFlashDeals(t *testing.T) {
	in := fixture()
	deals, standard := PartitionFlashDeals(in)

	assert.Equal(t, []int64{2, 4}, ids(deals))
	assert.Equal(t, []int64{1, 3}, ids(standard))
	assert.Len(t, append(deals, standard...), len(in))

	deals, standard = PartitionFlashDeals(nil)
	assert.Empty(t, deals)
	assert.Empty(t, standard)
}

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name string
		opts FilterOptions
		want []int64
	}{
		{name: "zero options keep everything", opts: FilterOptions{}, want: []int64{1, 2, 3, 4}},
		{name: "price range inclusive", opts: FilterOptions{PriceMin: moneyPtr("10"), PriceMax: moneyPtr("15")}, want: []int64{2, 3, 4}},
		{name: "category set", opts: FilterOptions{Categories: []string{"fashion", "home"}}, want: []int64{2, 4}},
		{name: "min rating", opts: FilterOptions{MinRating: 4.0}, want: []int64{1, 2, 3}},
		{name: "free shipping only", opts: FilterOptions{FreeShippingOnly: true}, want: []int64{1, 3, 4}},
		{name: "combined", opts: FilterOptions{PriceMax: moneyPtr("15"), FreeShippingOnly: true, MinRating: 3}, want: []int64{3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(ApplyFilters(fixture(), tt.opts)))
		})
	}
}

func TestDerive(t *testing.T) {
	params := ViewParameters{
		Category: AllCategories,
		Sort:     SortPriceLow,
		Filter:   FilterOptions{FreeShippingOnly: true},
	}
	assert.Equal(t, []int64{4, 3, 1}, ids(Derive(fixture(), params)))

	params.Category = "home"
	assert.Equal(t, []int64{4}, ids(Derive(fixture(), params)))

	assert.Equal(t, []int64{1, 2, 3, 4}, ids(Derive(fixture(), DefaultViewParameters())))
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in   string
		want SortKey
		ok   bool
	}{
		{in: "price-low", want: SortPriceLow, ok: true},
		{in: " Price-High ", want: SortPriceHigh, ok: true},
		{in: "popular", want: SortPopular, ok: true},
		{in: "newest", want: SortNewest, ok: true},
		{in: "recommended", want: SortRecommended, ok: true},
		{in: "price-ascending", want: SortPriceLow, ok: true},
		{in: "price-descending", want: SortPriceHigh, ok: true},
		{in: "rating-descending", want: SortRating, ok: true},
		{in: "popularity-descending", want: SortPopular, ok: true},
		{in: "popularity", want: SortPopular, ok: true},
		{in: "rating", want: SortRating, ok: true},
		{in: "", want: SortRecommended},
		{in: "bogus", want: SortRecommended},
	}

	for _, tt := range tests {
		got, ok := ParseSortKey(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestSortAliases_ResolveToKnownKeys(t *testing.T) {
	known := map[SortKey]bool{}
	for _, k := range SortKeys() {
		known[k] = true

		got, ok := ParseSortKey(string(k))
		assert.True(t, ok, k)
		assert.Equal(t, k, got)
	}

	for alias, key := range sortAliases {
		assert.True(t, known[key], alias)

		got, ok := ParseSortKey(alias)
		assert.True(t, ok, alias)
		assert.Equal(t, key, got, alias)
	}
}
