package order

import (
	"strings"
	"time"

	"shopfront/internal/address"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

func Statuses() []Status {
	return []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Statuses() {
		if st == known {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

// CanTransition reports whether an order in s may move to next.
// Delivered and cancelled orders are final.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID        uuid.UUID        `json:"id"`
	UserID    string           `json:"user_id"`
	Total     decimal.Decimal  `json:"total"`
	Status    Status           `json:"status"`
	Shipping  address.Shipping `json:"shipping"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type Item struct {
	ID        int64           `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Variant   *string         `json:"variant,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Draft is an order not yet written. An empty Status means pending.
type Draft struct {
	UserID   string
	Total    decimal.Decimal
	Status   Status
	Shipping address.Shipping
}

type ItemDraft struct {
	OrderID   uuid.UUID
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
	Variant   *string
}

type Stats struct {
	TotalOrders    int
	TotalRevenue   decimal.Decimal
	TotalCustomers int
	ByStatus       map[Status]int
}
