package service

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/roadready/dsm-admin-gateway/internal/models"
	appErrors "github.com/roadready/dsm-admin-gateway/pkg/errors"
)

// AuthService validates platform-issued access tokens. The gateway shares
// the platform's signing secret but never mints tokens itself.
type AuthService struct {
	secret []byte
}

// NewAuthService builds a validator around the shared signing secret.
func NewAuthService(secret string) *AuthService {
	return &AuthService{secret: []byte(secret)}
}

// ValidateToken parses and verifies an access token, returning the operator
// claims it carries.
func (s *AuthService) ValidateToken(raw string) (*models.OperatorClaims, error) {
	claims := &models.OperatorClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected token signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return claims, nil
}
