package review

import (
	"context"
	"html"
	"strings"
	"unicode/utf8"

	"shopfront/internal/logger"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// Service is the review boundary. Both calls log failures and return an
// empty value instead of an error.
type Service interface {
	FetchReviewsByProduct(ctx context.Context, productID int64) []Review
	CreateReview(ctx context.Context, draft Draft) *Review
	MarkHelpful(ctx context.Context, id uuid.UUID) bool
}

type service struct {
	repo   Repository
	policy *bluemonday.Policy
}

func NewService(repo Repository) Service {
	return &service{repo: repo, policy: bluemonday.StrictPolicy()}
}

func (s *service) FetchReviewsByProduct(ctx context.Context, productID int64) []Review {
	if productID <= 0 {
		return []Review{}
	}

	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch reviews",
			zap.String("layer", "service"),
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
		return []Review{}
	}
	return reviews
}

func (s *service) CreateReview(ctx context.Context, draft Draft) *Review {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateReview"),
		zap.Int64("product_id", draft.ProductID),
	)

	clean, err := s.prepare(draft)
	if err != nil {
		log.Warn("rejecting review", zap.Error(err))
		return nil
	}

	rv, err := s.repo.Create(ctx, clean)
	if err != nil {
		log.Error("failed to create review", zap.Error(err))
		return nil
	}
	return &rv
}

func (s *service) MarkHelpful(ctx context.Context, id uuid.UUID) bool {
	if _, err := s.repo.MarkHelpful(ctx, id); err != nil {
		logger.FromCtx(ctx).Warn("failed to mark review helpful",
			zap.String("review_id", id.String()),
			zap.Error(err),
		)
		return false
	}
	return true
}

// prepare strips markup from user text and validates the result.
func (s *service) prepare(d Draft) (Draft, error) {
	if d.ProductID <= 0 {
		return Draft{}, ErrInvalidProduct
	}
	if d.Rating < MinRating || d.Rating > MaxRating {
		return Draft{}, ErrRatingRange
	}

	d.UserName = s.sanitize(d.UserName)
	if d.UserName == "" {
		return Draft{}, ErrEmptyUserName
	}

	d.Comment = s.sanitize(d.Comment)
	if d.Comment == "" {
		return Draft{}, ErrEmptyComment
	}
	if utf8.RuneCountInString(d.Comment) > maxCommentLength {
		return Draft{}, ErrCommentTooLong
	}

	images := make([]string, 0, len(d.Images))
	for _, img := range d.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	if len(images) > maxImages {
		return Draft{}, ErrTooManyImages
	}
	d.Images = images

	return d, nil
}

// sanitize removes all markup and returns plain text.
func (s *service) sanitize(in string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(in)))
}
