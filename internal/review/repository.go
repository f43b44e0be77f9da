package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopfront/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	ListByProduct(ctx context.Context, productID int64) ([]Review, error)
	Create(ctx context.Context, draft Draft) (Review, error)
	MarkHelpful(ctx context.Context, id uuid.UUID) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const reviewColumns = `
	id, product_id, user_name, user_avatar, rating, comment, images, helpful_count, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (Review, error) {
	var (
		r      Review
		avatar sql.NullString
		images []string
	)
	err := row.Scan(
		&r.ID, &r.ProductID, &r.UserName, &avatar, &r.Rating,
		&r.Comment, pq.Array(&images), &r.HelpfulCount, &r.CreatedAt,
	)
	if err != nil {
		return Review{}, err
	}
	if avatar.Valid {
		a := avatar.String
		r.UserAvatar = &a
	}
	if images == nil {
		images = []string{}
	}
	r.Images = images
	return r, nil
}

func (r *repository) ListByProduct(ctx context.Context, productID int64) ([]Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByProduct"),
		zap.Int64("product_id", productID),
	)

	query := `SELECT` + reviewColumns + `
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		log.Error("list reviews failed", zap.Error(err))
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *repository) Create(ctx context.Context, draft Draft) (Review, error) {
	var avatar sql.NullString
	if draft.UserAvatar != nil {
		avatar = sql.NullString{String: *draft.UserAvatar, Valid: true}
	}

	images := draft.Images
	if images == nil {
		images = []string{}
	}

	query := `
		INSERT INTO reviews (id, product_id, user_name, user_avatar, rating, comment, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING` + reviewColumns

	rv, err := scanReview(r.db.QueryRowContext(ctx, query,
		uuid.New(),
		draft.ProductID,
		draft.UserName,
		avatar,
		draft.Rating,
		draft.Comment,
		pq.Array(images),
	))
	if err != nil {
		logger.FromCtx(ctx).Error("insert review failed",
			zap.String("layer", "repository"),
			zap.Int64("product_id", draft.ProductID),
			zap.Error(err),
		)
		return Review{}, fmt.Errorf("create review: %w", err)
	}
	return rv, nil
}

// MarkHelpful increments the helpful counter and returns the new value.
func (r *repository) MarkHelpful(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		UPDATE reviews
		SET helpful_count = helpful_count + 1
		WHERE id = $1
		RETURNING helpful_count
	`, id).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrReviewNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("mark review helpful: %w", err)
	}
	return n, nil
}
