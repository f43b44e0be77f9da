// Package checkout turns a cart into an order. The cart is only cleared once
// both the order and all of its items are confirmed written.
package checkout

import (
	"context"
	"errors"

	"shopfront/internal/address"
	"shopfront/internal/cart"
	"shopfront/internal/logger"
	"shopfront/internal/order"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrMissingUser          = errors.New("checkout requires a user id")
	ErrOrderNotCreated      = errors.New("order could not be created")
	ErrOrderItemsNotCreated = errors.New("order items could not be created")
)

// Quote is the price breakdown shown before placing an order.
type Quote struct {
	Lines    int
	Units    int
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

type Service struct {
	orders       order.Service
	shippingCost decimal.Decimal
}

func NewService(orders order.Service, shippingCost decimal.Decimal) *Service {
	return &Service{orders: orders, shippingCost: shippingCost}
}

// Quote prices the current cart. An empty cart ships for free.
func (s *Service) Quote(store *cart.Store) Quote {
	q := Quote{
		Lines:    store.Count(),
		Units:    store.TotalQuantity(),
		Subtotal: store.Total(),
		Shipping: decimal.Zero,
	}
	if q.Lines > 0 {
		q.Shipping = s.shippingCost
	}
	q.Total = q.Subtotal.Add(q.Shipping).Round(2)
	return q
}

// PlaceOrder writes the cart as an order for userID. On any failure the
// cart is left exactly as it was.
func (s *Service) PlaceOrder(ctx context.Context, userID string, store *cart.Store, ship address.Shipping) (*order.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "checkout"),
		zap.String("method", "PlaceOrder"),
		zap.String("user_id", userID),
	)

	if userID == "" {
		return nil, ErrMissingUser
	}

	ship = ship.Normalize()
	if err := ship.Validate(); err != nil {
		return nil, err
	}

	lines := store.Lines()
	if len(lines) == 0 {
		return nil, cart.ErrCartEmpty
	}

	quote := s.Quote(store)
	o := s.orders.CreateOrder(ctx, order.Draft{
		UserID:   userID,
		Total:    quote.Total,
		Status:   order.StatusPending,
		Shipping: ship,
	})
	if o == nil {
		log.Warn("order not created, keeping cart", zap.Int("lines", len(lines)))
		return nil, ErrOrderNotCreated
	}

	items := make([]order.ItemDraft, 0, len(lines))
	for _, l := range lines {
		item := order.ItemDraft{
			OrderID:   o.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.Price,
		}
		if l.Variant != "" {
			v := l.Variant
			item.Variant = &v
		}
		items = append(items, item)
	}

	if !s.orders.CreateOrderItems(ctx, items) {
		log.Warn("order items not created, keeping cart",
			zap.String("order_id", o.ID.String()),
		)
		s.cancelOrphan(ctx, log, o)
		return nil, ErrOrderItemsNotCreated
	}

	store.Clear()
	if err := store.Save(ctx); err != nil && !errors.Is(err, cart.ErrNoPersister) {
		log.Warn("cart cleared but not persisted", zap.Error(err))
	}

	log.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("total", o.Total.StringFixed(2)),
	)
	return o, nil
}

// cancelOrphan moves an order whose items were never written to cancelled.
func (s *Service) cancelOrphan(ctx context.Context, log *zap.Logger, o *order.Order) {
	if _, err := s.orders.UpdateStatus(ctx, o.ID, order.StatusCancelled); err != nil {
		log.Error("failed to cancel order without items",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
	}
}
