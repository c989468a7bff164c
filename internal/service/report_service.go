package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/eduflow-api/internal/models"
	"github.com/noah-isme/eduflow-api/internal/scope"
	appErrors "github.com/noah-isme/eduflow-api/pkg/errors"
	"github.com/noah-isme/eduflow-api/pkg/export"
)

// ReportFormat identifies a downloadable report encoding.
type ReportFormat string

const (
	FormatXLSX ReportFormat = "xlsx"
	FormatCSV  ReportFormat = "csv"
	FormatPDF  ReportFormat = "pdf"
)

// Valid returns true when the format is supported.
func (f ReportFormat) Valid() bool {
	switch f {
	case FormatXLSX, FormatCSV, FormatPDF:
		return true
	default:
		return false
	}
}

// ReportFile is a rendered download.
type ReportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

var activityReportHeaders = []string{"Date", "Time", "Batch", "Instructor", "Topic", "Hours"}

var activityReportWidths = []float64{30, 15, 15, 25, 40, 10}

var coverageReportHeaders = []string{"Employee ID", "Name", "Department", "Hours Completed", "Hours Allocated", "Coverage"}

// ReportService renders scope-filtered reports as downloadable files.
// Rendering is synchronous; there is no background queue.
type ReportService struct {
	activities *ActivityService
	teachers   *TeacherService
	excel      *export.ExcelExporter
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	maxRows    int
	logger     *zap.Logger
	now        func() time.Time
}

// NewReportService constructs a ReportService.
func NewReportService(activities *ActivityService, teachers *TeacherService, maxRows int, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		activities: activities,
		teachers:   teachers,
		excel:      export.NewExcelExporter(),
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		maxRows:    maxRows,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ActivityReport renders the actor's visible activities for the query.
// Every session counts as one hour.
func (s *ReportService) ActivityReport(ctx context.Context, actor scope.Actor, query scope.ActivityQuery, format ReportFormat) (*ReportFile, error) {
	if !format.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", format))
	}

	activities, err := s.activities.List(ctx, actor, query)
	if err != nil {
		return nil, err
	}
	if s.maxRows > 0 && len(activities) > s.maxRows {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("report exceeds %d rows, narrow the date window", s.maxRows))
	}

	rows := make([]map[string]string, 0, len(activities))
	for _, activity := range activities {
		rows = append(rows, map[string]string{
			"Date":       activity.Date.Format("Monday, Jan 2, 2006"),
			"Time":       activity.Time,
			"Batch":      activity.Batch,
			"Instructor": activity.InstructorName,
			"Topic":      activity.Topic,
			"Hours":      "1",
		})
	}

	data := export.Dataset{Headers: activityReportHeaders, Rows: rows}
	return s.render(data, format, "class-activities", "Class Activity Report", activityReportWidths)
}

// StaffCoverageReport renders per-teacher syllabus coverage for the staff
// visible to the actor.
func (s *ReportService) StaffCoverageReport(ctx context.Context, actor scope.Actor, format ReportFormat) (*ReportFile, error) {
	if !format.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", format))
	}

	teachers, err := s.teachers.List(ctx, actor, models.TeacherFilter{})
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]string, 0, len(teachers))
	for _, teacher := range teachers {
		rows = append(rows, map[string]string{
			"Employee ID":     teacher.EmployeeID,
			"Name":            teacher.FullName,
			"Department":      teacher.Department,
			"Hours Completed": strconv.Itoa(teacher.HoursCompleted),
			"Hours Allocated": strconv.Itoa(teacher.HoursAllocated),
			"Coverage":        coveragePercent(teacher.HoursCompleted, teacher.HoursAllocated),
		})
	}

	data := export.Dataset{Headers: coverageReportHeaders, Rows: rows}
	return s.render(data, format, "staff-coverage", "Staff Coverage Report", nil)
}

func (s *ReportService) render(data export.Dataset, format ReportFormat, slug, title string, widths []float64) (*ReportFile, error) {
	stamp := s.now().Format("20060102")
	var payload []byte
	var contentType string
	var err error

	switch format {
	case FormatXLSX:
		payload, err = s.excel.Render(data, title, widths)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		payload, err = s.csv.Render(data)
		contentType = "text/csv"
	case FormatPDF:
		payload, err = s.pdf.Render(data, title)
		contentType = "application/pdf"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	return &ReportFile{
		Filename:    fmt.Sprintf("%s-%s.%s", slug, stamp, format),
		ContentType: contentType,
		Payload:     payload,
	}, nil
}

// coveragePercent formats completed/allocated as a rounded percentage, or
// "n/a" when no hours are allocated.
func coveragePercent(completed, allocated int) string {
	if allocated <= 0 {
		return "n/a"
	}
	pct := int(math.Round(float64(completed) / float64(allocated) * 100))
	return strconv.Itoa(pct) + "%"
}
