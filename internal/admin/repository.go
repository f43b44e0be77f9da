package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopfront/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	FindActiveByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u User) (User, error)
	List(ctx context.Context) ([]User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindActiveByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, role, is_active, password_hash, created_at
		FROM admin_users
		WHERE email = $1 AND is_active = TRUE
	`, email).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.IsActive, &u.PasswordHash, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrAdminNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("find admin: %w", err)
	}
	return u, nil
}

func (r *repository) Create(ctx context.Context, u User) (User, error) {
	log := logger.FromCtx(ctx)

	var out User
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO admin_users (email, name, role, is_active, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, name, role, is_active, password_hash, created_at
	`, u.Email, u.Name, u.Role, u.IsActive, u.PasswordHash).
		Scan(&out.ID, &out.Email, &out.Name, &out.Role, &out.IsActive, &out.PasswordHash, &out.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return User{}, ErrEmailExists
		}
		log.Error("db: failed to insert admin user",
			zap.String("email", u.Email),
			zap.Error(err),
		)
		return User{}, fmt.Errorf("create admin: %w", err)
	}
	return out, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, name, role, is_active, created_at
		FROM admin_users
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
