// Package token implements the bearer-token boundary: issuing signed tokens
// for authenticated users and resolving presented tokens back to an actor.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/teamhub/project-management-api/internal/models"
	"github.com/teamhub/project-management-api/internal/policy"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptyHeader  = errors.New("empty authorization header")
	ErrBadHeader    = errors.New("invalid authorization header format")
)

// Claims carried by every issued token.
type Claims struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 bearer tokens.
type Manager struct {
	secretKey []byte
	expiry    time.Duration
}

// NewManager creates a token manager. Expiry must be positive.
func NewManager(secretKey string, expiry time.Duration) (*Manager, error) {
	if secretKey == "" {
		return nil, errors.New("token secret key cannot be empty")
	}
	if expiry <= 0 {
		expiry = 30 * time.Minute
	}
	return &Manager{
		secretKey: []byte(secretKey),
		expiry:    expiry,
	}, nil
}

// Issue signs a token encoding the user's id, username and role name.
func (m *Manager) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role.Name),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "project-management-api",
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token string and resolves it to an actor.
func (m *Manager) Verify(tokenString string) (*policy.Actor, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}

	return &policy.Actor{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     models.RoleName(claims.Role),
	}, nil
}

// ExtractToken extracts the bearer token from an Authorization header value.
func ExtractToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrEmptyHeader
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrBadHeader
	}

	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", ErrBadHeader
	}

	return tok, nil
}
