package order

import (
	"context"
	"errors"
	"strings"

	"shopfront/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the order boundary. Storefront calls (CreateOrder,
// CreateOrderItems, ListOrdersByUser, ListOrderItems) log failures and
// return an empty value; admin calls return errors.
type Service interface {
	CreateOrder(ctx context.Context, draft Draft) *Order
	CreateOrderItems(ctx context.Context, items []ItemDraft) bool
	ListOrdersByUser(ctx context.Context, userID string) []Order
	ListOrderItems(ctx context.Context, orderID uuid.UUID) []Item

	ListAll(ctx context.Context, status *Status) ([]Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Order, error)
	Stats(ctx context.Context) (Stats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateOrder(ctx context.Context, draft Draft) *Order {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("user_id", draft.UserID),
	)

	if err := validateDraft(draft); err != nil {
		log.Warn("rejecting order draft", zap.Error(err))
		return nil
	}

	o, err := s.repo.Create(ctx, draft)
	if err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil
	}
	return &o
}

func (s *service) CreateOrderItems(ctx context.Context, items []ItemDraft) bool {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrderItems"),
		zap.Int("count", len(items)),
	)

	if len(items) == 0 {
		log.Warn("rejecting order items", zap.Error(ErrNoItems))
		return false
	}
	for _, it := range items {
		if it.OrderID == uuid.Nil || it.ProductID <= 0 || it.Quantity <= 0 || it.Price.IsNegative() {
			log.Warn("rejecting order items",
				zap.Int64("product_id", it.ProductID),
				zap.Error(ErrInvalidItem),
			)
			return false
		}
	}

	if err := s.repo.CreateItems(ctx, items); err != nil {
		log.Error("failed to create order items", zap.Error(err))
		return false
	}
	return true
}

func (s *service) ListOrdersByUser(ctx context.Context, userID string) []Order {
	if strings.TrimSpace(userID) == "" {
		return []Order{}
	}

	orders, err := s.repo.List(ctx, ListOptions{UserID: &userID})
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list orders",
			zap.String("layer", "service"),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return []Order{}
	}
	return orders
}

func (s *service) ListOrderItems(ctx context.Context, orderID uuid.UUID) []Item {
	items, err := s.repo.ListItems(ctx, orderID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list order items",
			zap.String("layer", "service"),
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
		return []Item{}
	}
	return items
}

func (s *service) ListAll(ctx context.Context, status *Status) ([]Order, error) {
	return s.repo.List(ctx, ListOptions{Status: status})
}

// UpdateStatus moves an order to status when the transition is allowed.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", id.String()),
		zap.String("status", string(status)),
	)

	if _, err := ParseStatus(string(status)); err != nil {
		return Order{}, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrOrderNotFound) {
			log.Error("failed to load order", zap.Error(err))
		}
		return Order{}, err
	}

	if !current.Status.CanTransition(status) {
		log.Warn("status transition rejected", zap.String("from", string(current.Status)))
		return Order{}, ErrInvalidTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return Order{}, err
	}

	log.Info("order status updated", zap.String("from", string(current.Status)))
	return updated, nil
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

func validateDraft(d Draft) error {
	if strings.TrimSpace(d.UserID) == "" {
		return ErrEmptyUserID
	}
	if d.Total.IsNegative() {
		return ErrNegativeTotal
	}
	if d.Status != "" {
		if _, err := ParseStatus(string(d.Status)); err != nil {
			return err
		}
	}
	return nil
}
