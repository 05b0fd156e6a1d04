package service

import (
	"fmt"
	"strings"

	"github.com/roadready/dsm-admin-gateway/internal/dto"
	appErrors "github.com/roadready/dsm-admin-gateway/pkg/errors"
	"github.com/roadready/dsm-admin-gateway/pkg/export"
)

// Export formats for the confirmation summary download.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportService renders a completed run's summary as a downloadable file so
// the operator can hand the student a printout of the new schedule.
type ExportService struct {
	csv *export.CSVExporter
	pdf *export.PDFExporter
}

// NewExportService wires the renderers.
func NewExportService() *ExportService {
	return &ExportService{
		csv: export.NewCSVExporter(),
		pdf: export.NewPDFExporter(),
	}
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// RenderSummary produces the summary in the requested format.
func (s *ExportService) RenderSummary(summary *dto.SummaryView, format string) (*ExportFile, error) {
	dataset := summaryDataset(summary)

	switch strings.ToLower(format) {
	case ExportFormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv summary")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("reschedule-%s.csv", summary.EnrollmentID),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case ExportFormatPDF:
		content, err := s.pdf.Render(dataset, "New Schedule: "+summary.CourseName)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf summary")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("reschedule-%s.pdf", summary.EnrollmentID),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func summaryDataset(summary *dto.SummaryView) export.Dataset {
	headers := []string{"Day", "Date", "Start", "End", "Schedule ID"}
	rows := make([]map[string]string, 0, len(summary.Items))
	for _, item := range summary.Items {
		rows = append(rows, map[string]string{
			"Day":         fmt.Sprintf("%d", item.DayIndex+1),
			"Date":        item.Date,
			"Start":       item.StartTime,
			"End":         item.EndTime,
			"Schedule ID": item.ScheduleID,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
