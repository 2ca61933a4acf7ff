// Package auth issues and validates the application's JWTs. Two tokens
// are created per login: a short-lived access token carrying the role
// and permission set, and a longer-lived refresh token carrying only
// the subject. Both are HS256-signed with the configured secret.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/priceoptimizer/backend/models"
)

var (
	// ErrInvalidToken is returned when the token is malformed or its
	// signature does not verify.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when the token has expired
	ErrTokenExpired = errors.New("token expired")
)

// Token type claims. Refresh tokens cannot be used where an access
// token is required and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims represents the custom claims carried in application JWTs.
// Permissions are cached into the access token at issuance time so the
// request path never needs a role lookup.
type Claims struct {
	jwt.RegisteredClaims
	UserID      int64               `json:"uid"`
	Name        string              `json:"name,omitempty"`
	Role        models.Role         `json:"role,omitempty"`
	Permissions []models.Permission `json:"permissions,omitempty"`
	TokenType   string              `json:"type"`
}

// TokenManager signs and verifies application JWTs.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager creates a TokenManager with the given signing secret
// and token lifetimes.
func NewTokenManager(secret []byte, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL returns the configured access token lifetime.
func (m *TokenManager) AccessTTL() time.Duration {
	return m.accessTTL
}

// RefreshTTL returns the configured refresh token lifetime.
func (m *TokenManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

// IssueAccess creates a short-lived access token for user, embedding the
// role and permission set valid at issuance time.
func (m *TokenManager) IssueAccess(user *models.User, permissions []models.Permission) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
		UserID:      user.ID,
		Name:        user.Name,
		Role:        user.Role,
		Permissions: permissions,
		TokenType:   TokenTypeAccess,
	}
	return m.sign(claims)
}

// IssueRefresh creates a long-lived refresh token for user. Only subject
// and token type are embedded.
func (m *TokenManager) IssueRefresh(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
		},
		UserID:    user.ID,
		TokenType: TokenTypeRefresh,
	}
	return m.sign(claims)
}

// Validate parses and verifies a token, enforcing HS256 and expiry.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *TokenManager) sign(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
