package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"shopfront/internal/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, draft Draft) (Order, error)
	CreateItems(ctx context.Context, items []ItemDraft) error
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	List(ctx context.Context, opts ListOptions) ([]Order, error)
	ListItems(ctx context.Context, orderID uuid.UUID) ([]Item, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Order, error)
	Stats(ctx context.Context) (Stats, error)
}

type ListOptions struct {
	UserID *string
	Status *Status
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id, user_id, total, status,
	shipping_name, shipping_address, shipping_city, shipping_country, shipping_zip,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.Total, &o.Status,
		&o.Shipping.Name, &o.Shipping.Address, &o.Shipping.City,
		&o.Shipping.Country, &o.Shipping.Zip,
		&o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

func (r *repository) Create(ctx context.Context, draft Draft) (Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("user_id", draft.UserID),
	)

	status := draft.Status
	if status == "" {
		status = StatusPending
	}

	query := `
		INSERT INTO orders (
			id, user_id, total, status,
			shipping_name, shipping_address, shipping_city, shipping_country, shipping_zip
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING` + orderColumns

	row := r.db.QueryRowContext(ctx, query,
		uuid.New(),
		draft.UserID,
		draft.Total,
		status,
		draft.Shipping.Name,
		draft.Shipping.Address,
		draft.Shipping.City,
		draft.Shipping.Country,
		draft.Shipping.Zip,
	)

	o, err := scanOrder(row)
	if err != nil {
		log.Error("insert order failed", zap.Error(err))
		return Order{}, fmt.Errorf("create order: %w", err)
	}

	log.Info("order created", zap.String("order_id", o.ID.String()))
	return o, nil
}

// CreateItems writes all items in one transaction. Either every item is
// stored or none is.
func (r *repository) CreateItems(ctx context.Context, items []ItemDraft) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateItems"),
		zap.Int("count", len(items)),
	)

	if len(items) == 0 {
		return ErrNoItems
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO order_items (order_id, product_id, quantity, price, variant)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, item := range items {
		var variant sql.NullString
		if item.Variant != nil {
			variant = sql.NullString{String: *item.Variant, Valid: true}
		}

		if _, err := tx.ExecContext(ctx, query,
			item.OrderID,
			item.ProductID,
			item.Quantity,
			item.Price,
			variant,
		); err != nil {
			log.Error("insert order item failed",
				zap.Int64("product_id", item.ProductID),
				zap.Error(err),
			)
			return fmt.Errorf("create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order items: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Order, error) {
	query := `SELECT` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrOrderNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	query := `SELECT` + orderColumns + ` FROM orders`

	where := []string{}
	args := []any{}

	if opts.UserID != nil {
		args = append(args, *opts.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if opts.Status != nil {
		args = append(args, *opts.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	log.Debug("executing list orders query",
		zap.String("query", query),
		zap.Any("args", args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("list orders failed", zap.Error(err))
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) ListItems(ctx context.Context, orderID uuid.UUID) ([]Item, error) {
	query := `
		SELECT id, order_id, product_id, quantity, price, variant, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var (
			it      Item
			variant sql.NullString
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price, &variant, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if variant.Valid {
			v := variant.String
			it.Variant = &v
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Order, error) {
	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING` + orderColumns

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, status, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrOrderNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("update order status: %w", err)
	}
	return o, nil
}

// Stats aggregates over every order. Revenue includes cancelled orders, as
// the dashboard has always shown it.
func (r *repository) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByStatus: map[Status]int{}}

	var revenue decimal.NullDecimal
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), SUM(total), COUNT(DISTINCT user_id)
		FROM orders
	`).Scan(&stats.TotalOrders, &revenue, &stats.TotalCustomers)
	if err != nil {
		return Stats{}, fmt.Errorf("order totals: %w", err)
	}
	stats.TotalRevenue = decimal.Zero
	if revenue.Valid {
		stats.TotalRevenue = revenue.Decimal
	}

	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return Stats{}, fmt.Errorf("order status counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status Status
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return Stats{}, fmt.Errorf("scan status count: %w", err)
		}
		stats.ByStatus[status] = n
	}
	return stats, rows.Err()
}
