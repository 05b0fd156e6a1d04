package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roadready/dsm-admin-gateway/internal/dto"
	"github.com/roadready/dsm-admin-gateway/internal/models"
	appErrors "github.com/roadready/dsm-admin-gateway/pkg/errors"
	"github.com/roadready/dsm-admin-gateway/pkg/response"
)

type enrollmentLister interface {
	ListEnrollments(ctx context.Context, token string, query dto.EnrollmentQuery) ([]models.EnrollmentSummary, *models.Pagination, error)
}

// EnrollmentHandler passes the host page's enrollment listing through to
// the platform.
type EnrollmentHandler struct {
	enrollments enrollmentLister
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments enrollmentLister) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// List godoc
// @Summary List enrollments
// @Tags Enrollments
// @Produce json
// @Param search query string false "Free-text student search"
// @Param courseId query string false "Filter by course"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	var query dto.EnrollmentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	enrollments, pagination, err := h.enrollments.ListEnrollments(c.Request.Context(), tokenFromContext(c), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments, pagination)
}
