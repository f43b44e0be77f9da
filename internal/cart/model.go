package cart

import (
	"shopfront/internal/product"

	"github.com/shopspring/decimal"
)

// Line is one row of the cart. Price is a snapshot taken when the product was
// added and does not follow later catalog changes.
type Line struct {
	ProductID int64           `json:"id"`
	Image     string          `json:"image"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Variant   string          `json:"variant,omitempty"`
}

// LineKey identifies a line. Two variants of one product are separate lines.
type LineKey struct {
	ProductID int64
	Variant   string
}

func (l Line) Key() LineKey {
	return LineKey{ProductID: l.ProductID, Variant: l.Variant}
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l Line) valid() bool {
	return l.ProductID > 0 && l.Quantity > 0 && !l.Price.IsNegative()
}

// NewLine snapshots p into a cart line.
func NewLine(p product.Product, quantity int, variant string) Line {
	return Line{
		ProductID: p.ID,
		Image:     p.Image,
		Title:     p.Title,
		Price:     p.Price,
		Quantity:  quantity,
		Variant:   variant,
	}
}
