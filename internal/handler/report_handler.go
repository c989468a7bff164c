package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduflow-api/internal/service"
	"github.com/noah-isme/eduflow-api/pkg/response"
)

// ReportHandler streams rendered reports as downloads.
type ReportHandler struct {
	service *service.ReportService
}

// NewReportHandler creates a new handler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

func formatFromRequest(c *gin.Context) service.ReportFormat {
	format := service.ReportFormat(c.DefaultQuery("format", string(service.FormatXLSX)))
	return format
}

// Activities godoc
// @Summary Download activity report
// @Description Scope-filtered class activity list as xlsx, csv or pdf
// @Tags Reports
// @Produce application/octet-stream
// @Param format query string false "xlsx|csv|pdf" default(xlsx)
// @Param startDate query string false "Window start (YYYY-MM-DD, inclusive)"
// @Param endDate query string false "Window end (YYYY-MM-DD, inclusive)"
// @Param department query string false "Department code"
// @Param instructor query string false "Instructor name, exact match"
// @Param section query string false "Section letter"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /reports/activities [get]
func (h *ReportHandler) Activities(c *gin.Context) {
	query, err := activityQueryFromRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := h.service.ActivityReport(c.Request.Context(), actorFromContext(c), query, formatFromRequest(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Payload)
}

// StaffCoverage godoc
// @Summary Download staff coverage report
// @Description Per-teacher syllabus coverage as xlsx, csv or pdf
// @Tags Reports
// @Produce application/octet-stream
// @Param format query string false "xlsx|csv|pdf" default(xlsx)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /reports/staff-coverage [get]
func (h *ReportHandler) StaffCoverage(c *gin.Context) {
	file, err := h.service.StaffCoverageReport(c.Request.Context(), actorFromContext(c), formatFromRequest(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Payload)
}
