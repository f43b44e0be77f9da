package cart

import (
	"context"
	"errors"
	"fmt"

	"shopfront/internal/localstore"
	"shopfront/internal/logger"

	"go.uber.org/zap"
)

// StorageKey is the local store key holding the serialized cart.
const StorageKey = "cart"

// Persister is the slice of the local store the cart needs.
// *localstore.Store satisfies it.
type Persister interface {
	GetJSON(ctx context.Context, key string, dst any) error
	SetJSON(ctx context.Context, key string, v any) error
	Remove(ctx context.Context, key string) error
}

var ErrNoPersister = errors.New("cart has no persister")

// Save writes the current lines under StorageKey.
func (s *Store) Save(ctx context.Context) error {
	if s.persister == nil {
		return ErrNoPersister
	}

	lines := s.Lines()
	if err := s.persister.SetJSON(ctx, StorageKey, lines); err != nil {
		logger.FromCtx(ctx).Error("failed to save cart",
			zap.String("layer", "cart"),
			zap.Int("lines", len(lines)),
			zap.Error(err),
		)
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Restore replaces the in-memory lines with the persisted ones. A missing
// entry leaves an empty cart. Persisted lines that are no longer valid are
// dropped.
func (s *Store) Restore(ctx context.Context) error {
	if s.persister == nil {
		return ErrNoPersister
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "cart"),
		zap.String("method", "Restore"),
	)

	var lines []Line
	err := s.persister.GetJSON(ctx, StorageKey, &lines)
	if errors.Is(err, localstore.ErrNotFound) {
		s.Clear()
		return nil
	}
	if err != nil {
		log.Error("failed to restore cart", zap.Error(err))
		return fmt.Errorf("restore cart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = []Line{}
	for _, l := range lines {
		if err := s.add(l); err != nil {
			log.Warn("dropping persisted cart line",
				zap.Int64("product_id", l.ProductID),
				zap.Int("quantity", l.Quantity),
			)
		}
	}
	return nil
}

// Discard removes the persisted cart. In-memory lines are untouched.
func (s *Store) Discard(ctx context.Context) error {
	if s.persister == nil {
		return ErrNoPersister
	}
	if err := s.persister.Remove(ctx, StorageKey); err != nil {
		return fmt.Errorf("discard cart: %w", err)
	}
	return nil
}
