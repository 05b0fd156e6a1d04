package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadready/dsm-admin-gateway/internal/models"
)

func signToken(t *testing.T, secret string, claims *models.OperatorClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateToken(t *testing.T) {
	svc := NewAuthService("secret")
	raw := signToken(t, "secret", &models.OperatorClaims{
		UserID:   "op-1",
		Role:     models.RoleManager,
		BranchID: "branch-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := svc.ValidateToken(raw)

	require.NoError(t, err)
	assert.Equal(t, "op-1", claims.UserID)
	assert.Equal(t, models.RoleManager, claims.Role)
	assert.True(t, claims.Role.CanReschedule())
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewAuthService("secret")
	raw := signToken(t, "other", &models.OperatorClaims{UserID: "op-1"})

	_, err := svc.ValidateToken(raw)

	require.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewAuthService("secret")
	raw := signToken(t, "secret", &models.OperatorClaims{
		UserID: "op-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := svc.ValidateToken(raw)

	require.Error(t, err)
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, models.RoleAdmin.CanReschedule())
	assert.True(t, models.RoleManager.CanReschedule())
	assert.False(t, models.RoleInstructor.CanReschedule())
	assert.False(t, models.RoleStudent.CanReschedule())
}
