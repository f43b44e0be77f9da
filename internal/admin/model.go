package admin

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

type User struct {
	ID           int64
	Email        string
	Name         string
	Role         Role
	IsActive     bool
	PasswordHash string
	CreatedAt    time.Time
}

type CustomClaims struct {
	AdminID int64  `json:"admin_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    Role   `json:"role"`
	jwt.RegisteredClaims
}

// Session is the signed-in admin marker kept in the local store.
type Session struct {
	AdminID   int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func sessionFromClaims(token string, c *CustomClaims) *Session {
	s := &Session{
		AdminID: c.AdminID,
		Email:   c.Email,
		Name:    c.Name,
		Role:    c.Role,
		Token:   token,
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s
}

func (s Session) matches(c *CustomClaims) bool {
	return s.AdminID == c.AdminID &&
		s.Email == c.Email &&
		s.Name == c.Name &&
		s.Role == c.Role
}
