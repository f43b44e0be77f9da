package product

import (
	"context"
	"errors"
	"time"

	"shopfront/internal/logger"
	"shopfront/internal/metrics"

	"go.uber.org/zap"
)

// Service is the catalog data-access boundary. Fetch methods never return
// errors: failures are logged and downgraded to an empty result so a page can
// render its empty state. Admin mutations do return errors.
type Service interface {
	FetchProducts(ctx context.Context) []Product
	FetchFlashDeals(ctx context.Context) []Product
	FetchProductsByCategory(ctx context.Context, categoryID string) []Product
	FetchAll(ctx context.Context) []Product
	FetchProductByID(ctx context.Context, id int64) *Product

	Create(ctx context.Context, input NewProductInput) (Product, error)
	Update(ctx context.Context, input UpdateProductInput) (Product, error)
	Delete(ctx context.Context, id int64) error
	SetFlashDeal(ctx context.Context, id int64, flash bool) error
	Count(ctx context.Context) (int, error)
}

type service struct {
	repo    Repository
	metrics *metrics.Registry
}

func NewService(repo Repository) Service {
	return NewServiceWithMetrics(repo, metrics.Default)
}

func NewServiceWithMetrics(repo Repository, reg *metrics.Registry) Service {
	return &service{repo: repo, metrics: reg}
}

func (s *service) FetchProducts(ctx context.Context) []Product {
	flash := false
	return s.fetch(ctx, "FetchProducts", ListOptions{FlashDeal: &flash})
}

func (s *service) FetchFlashDeals(ctx context.Context) []Product {
	flash := true
	return s.fetch(ctx, "FetchFlashDeals", ListOptions{FlashDeal: &flash})
}

func (s *service) FetchProductsByCategory(ctx context.Context, categoryID string) []Product {
	return s.fetch(ctx, "FetchProductsByCategory", ListOptions{CategoryID: &categoryID})
}

func (s *service) FetchAll(ctx context.Context) []Product {
	return s.fetch(ctx, "FetchAll", ListOptions{})
}

func (s *service) fetch(ctx context.Context, method string, opts ListOptions) []Product {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", method),
	)

	start := time.Now()
	s.metrics.Counter("product.fetch").Inc()

	rows, err := s.repo.GetList(ctx, opts)
	if err != nil {
		s.metrics.Counter("product.fetch.failed").Inc()
		log.Error("failed to fetch products",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return []Product{}
	}

	products := make([]Product, 0, len(rows))
	for _, p := range rows {
		if err := Validate(p); err != nil {
			s.metrics.Counter("product.rejected").Inc()
			log.Warn("dropping invalid product record",
				zap.Int64("product_id", p.ID),
				zap.Error(err),
			)
			continue
		}
		products = append(products, p)
	}

	log.Debug("fetch products success",
		zap.Int("count", len(products)),
		zap.Duration("duration", time.Since(start)),
	)
	return products
}

func (s *service) FetchProductByID(ctx context.Context, id int64) *Product {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "FetchProductByID"),
		zap.Int64("product_id", id),
	)

	if id <= 0 {
		return nil
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrProductNotFound) {
			s.metrics.Counter("product.fetch.failed").Inc()
			log.Error("failed to fetch product", zap.Error(err))
		}
		return nil
	}

	if err := Validate(*p); err != nil {
		s.metrics.Counter("product.rejected").Inc()
		log.Warn("dropping invalid product record", zap.Error(err))
		return nil
	}
	return p
}

func (s *service) Create(ctx context.Context, input NewProductInput) (Product, error) {
	if err := validateNew(input); err != nil {
		return Product{}, err
	}
	return s.repo.Create(ctx, input)
}

func (s *service) Update(ctx context.Context, input UpdateProductInput) (Product, error) {
	if err := validateUpdate(input); err != nil {
		return Product{}, err
	}
	return s.repo.Update(ctx, input)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.FromCtx(ctx).Error("failed to delete product",
			zap.Int64("product_id", id),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) SetFlashDeal(ctx context.Context, id int64, flash bool) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return s.repo.SetFlashDeal(ctx, id, flash)
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
