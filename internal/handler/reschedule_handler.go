package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roadready/dsm-admin-gateway/internal/dto"
	"github.com/roadready/dsm-admin-gateway/internal/models"
	"github.com/roadready/dsm-admin-gateway/internal/service"
	appErrors "github.com/roadready/dsm-admin-gateway/pkg/errors"
	"github.com/roadready/dsm-admin-gateway/pkg/response"
)

type rescheduleWizard interface {
	Start(ctx context.Context, token string, operator *models.OperatorClaims, enrollmentID string, req dto.StartRescheduleRequest) (*dto.SessionView, error)
	Get(ctx context.Context, operator *models.OperatorClaims, sessionID string) (*dto.SessionView, error)
	Pick(ctx context.Context, operator *models.OperatorClaims, sessionID string, req dto.PickRequest) (*dto.SessionView, error)
	Back(ctx context.Context, operator *models.OperatorClaims, sessionID string) (*dto.SessionView, error)
	Cancel(ctx context.Context, operator *models.OperatorClaims, sessionID string) error
	Summary(ctx context.Context, operator *models.OperatorClaims, sessionID string) (*dto.SummaryView, error)
	Confirm(ctx context.Context, token string, operator *models.OperatorClaims, sessionID string) (*dto.ConfirmResponse, error)
}

type summaryExporter interface {
	RenderSummary(summary *dto.SummaryView, format string) (*service.ExportFile, error)
}

// RescheduleHandler exposes the reschedule wizard endpoints.
type RescheduleHandler struct {
	wizard  rescheduleWizard
	exports summaryExporter
}

// NewRescheduleHandler constructs RescheduleHandler. exports may be nil
// when the summary download is disabled.
func NewRescheduleHandler(wizard rescheduleWizard, exports summaryExporter) *RescheduleHandler {
	return &RescheduleHandler{wizard: wizard, exports: exports}
}

// Start godoc
// @Summary Open a reschedule wizard session for an enrollment
// @Tags Reschedule
// @Accept json
// @Produce json
// @Param id path string true "Enrollment ID"
// @Param payload body dto.StartRescheduleRequest true "Course and days to reschedule"
// @Success 201 {object} response.Envelope
// @Router /enrollments/{id}/reschedule [post]
func (h *RescheduleHandler) Start(c *gin.Context) {
	var req dto.StartRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	view, err := h.wizard.Start(c.Request.Context(), tokenFromContext(c), operatorFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// Get godoc
// @Summary Reload a wizard session
// @Tags Reschedule
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /reschedule-sessions/{sid} [get]
func (h *RescheduleHandler) Get(c *gin.Context) {
	view, err := h.wizard.Get(c.Request.Context(), operatorFromContext(c), c.Param("sid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Pick godoc
// @Summary Pick a candidate slot for the current day
// @Tags Reschedule
// @Accept json
// @Produce json
// @Param sid path string true "Session ID"
// @Param payload body dto.PickRequest true "Chosen slot"
// @Success 200 {object} response.Envelope
// @Router /reschedule-sessions/{sid}/picks [post]
func (h *RescheduleHandler) Pick(c *gin.Context) {
	var req dto.PickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	view, err := h.wizard.Pick(c.Request.Context(), operatorFromContext(c), c.Param("sid"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Back godoc
// @Summary Step back to the previous day
// @Tags Reschedule
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /reschedule-sessions/{sid}/back [post]
func (h *RescheduleHandler) Back(c *gin.Context) {
	view, err := h.wizard.Back(c.Request.Context(), operatorFromContext(c), c.Param("sid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Cancel godoc
// @Summary Abandon a wizard session
// @Tags Reschedule
// @Param sid path string true "Session ID"
// @Success 204
// @Router /reschedule-sessions/{sid}/cancel [post]
func (h *RescheduleHandler) Cancel(c *gin.Context) {
	if err := h.wizard.Cancel(c.Request.Context(), operatorFromContext(c), c.Param("sid")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Summary godoc
// @Summary Show the confirmation summary for a completed session
// @Tags Reschedule
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /reschedule-sessions/{sid}/summary [get]
func (h *RescheduleHandler) Summary(c *gin.Context) {
	summary, err := h.wizard.Summary(c.Request.Context(), operatorFromContext(c), c.Param("sid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// ExportSummary godoc
// @Summary Download the confirmation summary as CSV or PDF
// @Tags Reschedule
// @Produce octet-stream
// @Param sid path string true "Session ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /reschedule-sessions/{sid}/summary/export [get]
func (h *RescheduleHandler) ExportSummary(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "summary export is disabled"))
		return
	}
	summary, err := h.wizard.Summary(c.Request.Context(), operatorFromContext(c), c.Param("sid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exports.RenderSummary(summary, c.DefaultQuery("format", service.ExportFormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+file.Filename)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

// Confirm godoc
// @Summary Submit the completed plan to the platform
// @Tags Reschedule
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /reschedule-sessions/{sid}/confirm [post]
func (h *RescheduleHandler) Confirm(c *gin.Context) {
	result, err := h.wizard.Confirm(c.Request.Context(), tokenFromContext(c), operatorFromContext(c), c.Param("sid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
