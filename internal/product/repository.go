package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shopfront/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const productColumns = `
	id,
	title,
	price,
	original_price,
	discount,
	image,
	rating,
	sold,
	category_id,
	is_flash_deal,
	free_shipping,
	created_at`

type Repository interface {
	GetList(ctx context.Context, opts ListOptions) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, input NewProductInput) (Product, error)
	Update(ctx context.Context, input UpdateProductInput) (Product, error)
	Delete(ctx context.Context, id int64) error
	SetFlashDeal(ctx context.Context, id int64, flash bool) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var (
		p        Product
		original decimal.NullDecimal
		discount sql.NullInt64
		category sql.NullString
	)

	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Price,
		&original,
		&discount,
		&p.Image,
		&p.Rating,
		&p.Sold,
		&category,
		&p.IsFlashDeal,
		&p.FreeShipping,
		&p.CreatedAt,
	)
	if err != nil {
		return Product{}, err
	}

	if original.Valid {
		v := original.Decimal
		p.OriginalPrice = &v
	}
	if discount.Valid {
		v := int(discount.Int64)
		p.Discount = &v
	}
	if category.Valid {
		v := category.String
		p.CategoryID = &v
	}
	return p, nil
}

func (r *repository) GetList(ctx context.Context, opts ListOptions) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetProductList"),
	)

	start := time.Now()

	// ---------- where ----------
	where := []string{}
	args := []any{}

	if opts.FlashDeal != nil {
		where = append(where, fmt.Sprintf("is_flash_deal = $%d", len(args)+1))
		args = append(args, *opts.FlashDeal)
		log = log.With(zap.Bool("filter_flash_deal", *opts.FlashDeal))
	}

	if opts.CategoryID != nil {
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)+1))
		args = append(args, *opts.CategoryID)
		log = log.With(zap.String("filter_category_id", *opts.CategoryID))
	}

	query := `SELECT` + productColumns + `
	FROM products`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	log.Debug("executing query", zap.Int("args_count", len(args)))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(products)),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+productColumns+`
	FROM products
	WHERE id = $1`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, input NewProductInput) (Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateProduct"),
	)

	query := `
	INSERT INTO products (
		title,
		price,
		original_price,
		discount,
		image,
		rating,
		sold,
		category_id,
		is_flash_deal,
		free_shipping
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING` + productColumns

	row := r.db.QueryRowContext(ctx, query,
		input.Title,
		input.Price,
		nullDecimal(input.OriginalPrice),
		nullInt(input.Discount),
		input.Image,
		input.Rating,
		input.Sold,
		nullString(input.CategoryID),
		input.IsFlashDeal,
		input.FreeShipping,
	)

	p, err := scanProduct(row)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return Product{}, err
	}

	log.Info("success create product", zap.Int64("product_id", p.ID))
	return p, nil
}

func (r *repository) Update(ctx context.Context, input UpdateProductInput) (Product, error) {
	sets := []string{}
	args := []any{}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.Title != nil {
		add("title", *input.Title)
	}
	if input.Price != nil {
		add("price", *input.Price)
	}
	if input.OriginalPrice != nil {
		add("original_price", *input.OriginalPrice)
	}
	if input.Discount != nil {
		add("discount", *input.Discount)
	}
	if input.Image != nil {
		add("image", *input.Image)
	}
	if input.CategoryID != nil {
		add("category_id", *input.CategoryID)
	}
	if input.FreeShipping != nil {
		add("free_shipping", *input.FreeShipping)
	}

	if len(sets) == 0 {
		return Product{}, ErrNoFieldsToUpdate
	}

	args = append(args, input.ID)
	query := `
	UPDATE products
	SET ` + strings.Join(sets, ", ") + `
	WHERE id = $` + fmt.Sprint(len(args)) + `
	RETURNING` + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *repository) SetFlashDeal(ctx context.Context, id int64, flash bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET is_flash_deal = $1
		WHERE id = $2
	`, flash, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func expectOneRow(res sql.Result) error {
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
