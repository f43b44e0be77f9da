package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"shopfront/internal/logger"
	"shopfront/internal/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, name, icon string) (Category, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context) ([]Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetAll"),
	)

	query := `
		SELECT id, name, icon, created_at
		FROM categories
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("DB query failed GetAll", zap.Error(err))
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var (
			c    Category
			icon sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &icon, &c.CreatedAt); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Icon = icon.String
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

// Create inserts a category whose id is the slug of its name.
func (r *repository) Create(ctx context.Context, name, icon string) (Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("category_name", name),
	)

	name = strings.TrimSpace(name)
	id := utils.Slugify(name)
	if name == "" || id == "" {
		return Category{}, ErrEmptyName
	}

	query := `
		INSERT INTO categories (id, name, icon)
		VALUES ($1, $2, $3)
		RETURNING id, name, icon, created_at
	`

	var (
		c       Category
		iconCol sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id, name, icon).
		Scan(&c.ID, &c.Name, &iconCol, &c.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return Category{}, ErrCategoryExists
		}
		log.Error("Create category failed", zap.Error(err))
		return Category{}, fmt.Errorf("add category failed: %w", err)
	}
	c.Icon = iconCol.String

	log.Info("Create category success", zap.String("category_id", c.ID))
	return c, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}
