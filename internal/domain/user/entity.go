package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is an account. PasswordHash is empty for accounts created through an
// external identity provider.
type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Phone        *string
	Provider     *string
	ProviderID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// TokenRecord is the server-side half of an issued JWT. Deleting it revokes
// the token even while its signature still verifies.
type TokenRecord struct {
	ID        uuid.UUID
	UserID    uint
	Kind      TokenKind
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (t *TokenRecord) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// OTP is a one-time code issued for a password reset.
type OTP struct {
	ID        uint
	Email     string
	Code      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (o *OTP) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
