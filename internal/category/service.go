package category

import (
	"context"
	"strings"

	"shopfront/internal/logger"

	"go.uber.org/zap"
)

// Service wraps the category repository. FetchCategories never fails: an
// unreachable data service yields an empty list.
type Service interface {
	FetchCategories(ctx context.Context) []Category
	Create(ctx context.Context, name, icon string) (Category, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) FetchCategories(ctx context.Context) []Category {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "FetchCategories"),
	)

	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return []Category{}
	}

	log.Debug("FetchCategories success", zap.Int("count", len(categories)))
	return categories
}

func (s *service) Create(ctx context.Context, name, icon string) (Category, error) {
	if strings.TrimSpace(name) == "" {
		return Category{}, ErrEmptyName
	}
	return s.repo.Create(ctx, name, strings.TrimSpace(icon))
}

func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrCategoryNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.FromCtx(ctx).Error("failed to delete category",
			zap.String("category_id", id),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
