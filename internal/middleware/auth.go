package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/roadready/dsm-admin-gateway/internal/models"
	appErrors "github.com/roadready/dsm-admin-gateway/pkg/errors"
	"github.com/roadready/dsm-admin-gateway/pkg/response"
)

// Context keys set by the auth middleware.
const (
	ContextOperatorKey = "operator"
	ContextTokenKey    = "access_token"
)

type tokenValidator interface {
	ValidateToken(raw string) (*models.OperatorClaims, error)
}

// Auth validates the bearer token and stores both the operator claims and
// the raw token on the request context. The raw token is kept because every
// platform call forwards it unchanged.
func Auth(validator tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing bearer token"))
			c.Abort()
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims, err := validator.ValidateToken(raw)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextOperatorKey, claims)
		c.Set(ContextTokenKey, raw)
		c.Next()
	}
}

// RequireReschedulePermission rejects roles that may not drive the wizard.
func RequireReschedulePermission() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextOperatorKey)
		claims, ok := value.(*models.OperatorClaims)
		if !exists || !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if !claims.Role.CanReschedule() {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "role may not reschedule enrollments"))
			c.Abort()
			return
		}
		c.Next()
	}
}
