package admin

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"shopfront/internal/localstore"
	"shopfront/internal/logger"

	"go.uber.org/zap"
)

// SessionKey is the local store key holding the signed-in admin.
const SessionKey = "adminUser"

const minPasswordLength = 8

// SessionStore is the slice of the local store the admin session needs.
type SessionStore interface {
	GetJSON(ctx context.Context, key string, dst any) error
	SetJSON(ctx context.Context, key string, v any) error
	Remove(ctx context.Context, key string) error
}

type Service interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context) error
	// Restore loads the persisted session. Expired or tampered sessions are
	// removed and reported as ErrNotLoggedIn.
	Restore(ctx context.Context) (*Session, error)
	CreateAdmin(ctx context.Context, email, name, password string, role Role) (User, error)
	List(ctx context.Context) ([]User, error)
}

type service struct {
	repo    Repository
	tokens  *TokenIssuer
	limiter *Limiter
	store   SessionStore
}

func NewService(repo Repository, tokens *TokenIssuer, limiter *Limiter, store SessionStore) Service {
	if limiter == nil {
		limiter = NewLoginLimiter()
	}
	return &service{repo: repo, tokens: tokens, limiter: limiter, store: store}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("email", email),
	)

	if !s.limiter.Allow(email) {
		log.Warn("login throttled")
		return nil, ErrTooManyAttempts
	}

	u, err := s.repo.FindActiveByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrAdminNotFound) {
			log.Error("failed to look up admin", zap.Error(err))
			return nil, err
		}
		log.Info("login rejected: unknown or inactive admin")
		return nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		log.Info("login rejected: wrong password")
		return nil, ErrInvalidCredentials
	}

	token, expires, err := s.tokens.Issue(u)
	if err != nil {
		log.Error("failed to sign token", zap.Error(err))
		return nil, err
	}

	session := &Session{
		AdminID:   u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Token:     token,
		ExpiresAt: expires,
	}

	if err := s.store.SetJSON(ctx, SessionKey, session); err != nil {
		log.Error("failed to persist session", zap.Error(err))
		return nil, fmt.Errorf("persist admin session: %w", err)
	}

	log.Info("admin logged in", zap.Int64("admin_id", u.ID))
	return session, nil
}

func (s *service) Logout(ctx context.Context) error {
	if err := s.store.Remove(ctx, SessionKey); err != nil {
		return fmt.Errorf("remove admin session: %w", err)
	}
	return nil
}

func (s *service) Restore(ctx context.Context) (*Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Restore"),
	)

	var session Session
	err := s.store.GetJSON(ctx, SessionKey, &session)
	if errors.Is(err, localstore.ErrNotFound) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("load admin session: %w", err)
	}

	claims, err := s.tokens.Parse(session.Token)
	if err == nil && !session.matches(claims) {
		err = ErrInvalidToken
	}
	if err != nil {
		log.Info("discarding stored admin session", zap.Error(err))
		if rmErr := s.store.Remove(ctx, SessionKey); rmErr != nil {
			log.Warn("failed to remove stale session", zap.Error(rmErr))
		}
		return nil, ErrNotLoggedIn
	}

	// Identity comes from the signed token only.
	return sessionFromClaims(session.Token, claims), nil
}

func (s *service) CreateAdmin(ctx context.Context, email, name, password string, role Role) (User, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return User{}, ErrWeakPassword
	}
	if role == "" {
		role = RoleAdmin
	}

	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}

	return s.repo.Create(ctx, User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		Role:         role,
		IsActive:     true,
		PasswordHash: hash,
	})
}

func (s *service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}
