package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadready/dsm-admin-gateway/internal/dto"
	appErrors "github.com/roadready/dsm-admin-gateway/pkg/errors"
)

func sampleSummary() *dto.SummaryView {
	return &dto.SummaryView{
		EnrollmentID: "enr-1",
		CourseName:   "Category B",
		Items: []dto.SummaryItem{
			{DayIndex: 0, ScheduleID: "s1", Date: "2026-09-01", StartTime: "08:00", EndTime: "12:00"},
			{DayIndex: 2, ScheduleID: "s3", Date: "2026-09-03", StartTime: "13:00", EndTime: "17:00"},
		},
		ScheduleIDs: []string{"s1", "orig-1", "s3"},
	}
}

func TestRenderSummaryCSV(t *testing.T) {
	svc := NewExportService()

	file, err := svc.RenderSummary(sampleSummary(), "csv")

	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "reschedule-enr-1.csv", file.Filename)

	content := string(file.Content)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Date")
	assert.Contains(t, lines[1], "2026-09-01")
	assert.Contains(t, lines[2], "s3")
}

func TestRenderSummaryPDF(t *testing.T) {
	svc := NewExportService()

	file, err := svc.RenderSummary(sampleSummary(), "pdf")

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Content), "%PDF"))
}

func TestRenderSummaryUnknownFormat(t *testing.T) {
	svc := NewExportService()

	_, err := svc.RenderSummary(sampleSummary(), "xlsx")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
