package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Roles carried in access tokens
const (
	RoleSystemAdmin = "system_admin"
	RoleShopOwner   = "shop_owner"
)

const issuer = "storefront"

// Service validates and issues JWT access tokens. Accounts live with the external identity
// provider; this service only needs the shared signing secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a new auth service
func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID uuid.UUID  `json:"user_id"`
	ShopID *uuid.UUID `json:"shop_id,omitempty"`
	Email  string     `json:"email"`
	Role   string     `json:"role"`
	Type   string     `json:"type"` // access or refresh
	jwt.RegisteredClaims
}

// IssueToken signs an access token for the given identity
func (s *Service) IssueToken(userID uuid.UUID, shopID *uuid.UUID, email, role string) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("jwt secret is not configured")
	}

	now := time.Now()
	claims := TokenClaims{
		UserID: userID,
		ShopID: shopID,
		Email:  email,
		Role:   role,
		Type:   "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates and parses a JWT access token
func (s *Service) ValidateToken(tokenString string) (*TokenClaims, error) {
	if len(s.secret) == 0 {
		return nil, errors.New("jwt secret is not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Type != "access" {
		return nil, errors.New("invalid token type")
	}

	return claims, nil
}
