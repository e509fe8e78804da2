package user

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// MaxUsernameLen matches the column size.
const MaxUsernameLen = 32

var (
	ErrUsernameRequired = errors.New("username required")
	ErrUsernameTooLong  = errors.New("username too long")
	ErrUsernameInvalid  = errors.New("username may not contain spaces or control characters")
	ErrUnknownRole      = errors.New("unknown role")
)

// User owns saved decisions and a single draft.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;size:32;not null" json:"username"`
	PasswordHash string     `gorm:"size:128;not null" json:"-"`
	Role         Role       `gorm:"type:varchar(10);not null;default:'user'" json:"role"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// ParseRole maps an empty role to RoleUser.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", ErrUnknownRole
}

// NormalizeUsername trims surrounding space and rejects names that
// would not round-trip through a login form.
func NormalizeUsername(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrUsernameRequired
	}
	if len(name) > MaxUsernameLen {
		return "", ErrUsernameTooLong
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return "", ErrUsernameInvalid
		}
	}
	return name, nil
}
