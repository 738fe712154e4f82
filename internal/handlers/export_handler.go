package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acadboost/academic-service/internal/repositories"
	"github.com/acadboost/academic-service/internal/services"
	"github.com/acadboost/academic-service/internal/utils"
)

type ExportHandler struct {
	BaseHandler
	service services.ExportService
}

func NewExportHandler(service services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *ExportHandler) parseReportPeriod(c *gin.Context) repositories.ReportPeriod {
	now := time.Now()
	period := repositories.ReportPeriod{
		From: now.AddDate(0, 0, -30),
		To:   now,
	}
	if v := c.Query("from"); v != "" {
		if from, err := time.Parse("2006-01-02", v); err == nil {
			period.From = from
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err := time.Parse("2006-01-02", v); err == nil {
			period.To = to.AddDate(0, 0, 1)
		}
	}
	return period
}

// ExportStudentPerformance downloads the student performance report as CSV
// @Summary Export student performance CSV
// @Tags exports
// @Produce text/csv
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Router /exports/student-performance [get]
func (h *ExportHandler) ExportStudentPerformance(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	data, fileName, err := h.service.StudentPerformanceCSV(c.Request.Context(), actor, h.parseReportPeriod(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendFile(c, data, fileName, contentTypeCSV)
}

// ExportAttendanceSummary downloads the attendance summary report as CSV
// @Summary Export attendance summary CSV
// @Tags exports
// @Produce text/csv
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Router /exports/attendance-summary [get]
func (h *ExportHandler) ExportAttendanceSummary(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	data, fileName, err := h.service.AttendanceSummaryCSV(c.Request.Context(), actor, h.parseReportPeriod(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendFile(c, data, fileName, contentTypeCSV)
}

// ExportAssignmentAnalysis downloads the assignment analysis report as CSV
// @Summary Export assignment analysis CSV
// @Tags exports
// @Produce text/csv
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Router /exports/assignment-analysis [get]
func (h *ExportHandler) ExportAssignmentAnalysis(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	data, fileName, err := h.service.AssignmentAnalysisCSV(c.Request.Context(), actor, h.parseReportPeriod(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendFile(c, data, fileName, contentTypeCSV)
}

// ExportUserActivity downloads the user activity report as CSV
// @Summary Export user activity CSV
// @Tags exports
// @Produce text/csv
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Router /exports/user-activity [get]
func (h *ExportHandler) ExportUserActivity(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	data, fileName, err := h.service.UserActivityCSV(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendFile(c, data, fileName, contentTypeCSV)
}

// ExportWorkbook downloads every report in one multi-sheet XLSX file
// @Summary Export report workbook
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Router /exports/workbook [get]
func (h *ExportHandler) ExportWorkbook(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	data, fileName, err := h.service.ReportWorkbook(c.Request.Context(), actor, h.parseReportPeriod(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendFile(c, data, fileName, contentTypeXLSX)
}
