package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/roadready/dsm-admin-gateway/internal/middleware"
	"github.com/roadready/dsm-admin-gateway/internal/models"
)

func operatorFromContext(c *gin.Context) *models.OperatorClaims {
	value, exists := c.Get(middleware.ContextOperatorKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.OperatorClaims)
	if !ok {
		return nil
	}
	return claims
}

func tokenFromContext(c *gin.Context) string {
	value, exists := c.Get(middleware.ContextTokenKey)
	if !exists {
		return ""
	}
	token, _ := value.(string)
	return token
}
