package auth

import (
	"errors"
	"time"

	"decision-coach/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "decision-coach"

var ErrInvalidToken = errors.New("invalid session token")

// Claims identify the account a session token was issued to. The ID
// claim is unique per login so a re-login always yields a new token.
type Claims struct {
	UserID   uint      `json:"uid"`
	Username string    `json:"usr"`
	Role     user.Role `json:"rol"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool { return c.Role == user.RoleAdmin }

// IssueSessionToken signs an HS256 token for u that expires after ttl.
func IssueSessionToken(secret string, u user.User, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseSessionToken verifies signature, issuer and expiry. Tokens
// without an expiry or user ID are rejected.
func ParseSessionToken(secret, tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	claims := &Claims{}
	if _, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err != nil {
		return nil, err
	}
	if claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
