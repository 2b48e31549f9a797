package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_IssueAndValidate(t *testing.T) {
	svc := NewService("secret", time.Hour)
	userID, shopID := uuid.New(), uuid.New()

	token, err := svc.IssueToken(userID, &shopID, "owner@example.com", RoleShopOwner)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	require.NotNil(t, claims.ShopID)
	assert.Equal(t, shopID, *claims.ShopID)
	assert.Equal(t, RoleShopOwner, claims.Role)
	assert.Equal(t, "storefront", claims.Issuer)
}

func TestService_RejectsForeignSecret(t *testing.T) {
	token, err := NewService("one", time.Hour).IssueToken(uuid.New(), nil, "", RoleSystemAdmin)
	require.NoError(t, err)

	_, err = NewService("two", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestService_RejectsExpiredAndRefreshTokens(t *testing.T) {
	svc := NewService("secret", time.Hour)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		UserID: uuid.New(),
		Type:   "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		UserID: uuid.New(),
		Type:   "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	signed, err = refresh.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.EqualError(t, err, "invalid token type")
}

func TestService_RequiresSecret(t *testing.T) {
	_, err := NewService("", time.Hour).IssueToken(uuid.New(), nil, "", RoleSystemAdmin)
	assert.Error(t, err)

	_, err = NewService("", time.Hour).ValidateToken("anything")
	assert.Error(t, err)
}
