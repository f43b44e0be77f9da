package admin

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again shortly")
	ErrNotLoggedIn        = errors.New("admin is not logged in")
	ErrSessionExpired     = errors.New("admin session expired")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingSecret      = errors.New("JWT_SECRET is not set")
	ErrEmailExists        = errors.New("email already registered")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidEmail       = errors.New("invalid email")
)
