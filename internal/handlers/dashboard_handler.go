package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acadboost/academic-service/internal/repositories"
	"github.com/acadboost/academic-service/internal/services"
	"github.com/acadboost/academic-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// parseReportPeriod reads from/to query dates; defaults to the last 30 days.
func (h *DashboardHandler) parseReportPeriod(c *gin.Context) repositories.ReportPeriod {
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
			// Include the whole end day.
			period.To = to.AddDate(0, 0, 1)
		}
	}
	return period
}

// ===== DASHBOARD ENDPOINTS =====

// GetSummary returns the role-scoped landing view
// @Summary Get dashboard summary
// @Description Returns admin, teacher or student overview depending on the caller's role
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.DashboardSummary
// @Failure 401 {object} ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Getting dashboard summary", "user_id", actor.ID, "role", actor.Role)

	summary, err := h.service.Summary(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetDepartmentSummaries returns per-department aggregates
// @Summary Get department summaries
// @Tags dashboard
// @Produce json
// @Success 200 {array} repositories.DepartmentSummary
// @Failure 403 {object} ErrorResponse
// @Router /dashboard/departments [get]
func (h *DashboardHandler) GetDepartmentSummaries(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	summaries, err := h.service.DepartmentSummaries(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GetSubjectPerformance returns average marks and attendance per subject
// @Summary Get subject performance
// @Tags dashboard
// @Produce json
// @Success 200 {array} repositories.SubjectPerformance
// @Failure 403 {object} ErrorResponse
// @Router /dashboard/subject-performance [get]
func (h *DashboardHandler) GetSubjectPerformance(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	performance, err := h.service.SubjectPerformance(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, performance)
}

// ===== REPORT ENDPOINTS =====

// GetStudentPerformanceReport returns per-student performance rows
// @Summary Student performance report
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} repositories.StudentPerformanceRow
// @Failure 403 {object} ErrorResponse
// @Router /reports/student-performance [get]
func (h *DashboardHandler) GetStudentPerformanceReport(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	rows, err := h.service.StudentPerformanceReport(c.Request.Context(), actor, h.parseReportPeriod(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// GetAttendanceSummaryReport returns attendance aggregates per student and subject
// @Summary Attendance summary report
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} repositories.AttendanceSummaryRow
// @Failure 403 {object} ErrorResponse
// @Router /reports/attendance-summary [get]
func (h *DashboardHandler) GetAttendanceSummaryReport(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	rows, err := h.service.AttendanceSummaryReport(c.Request.Context(), actor, h.parseReportPeriod(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// GetAssignmentAnalysisReport returns per-assignment submission and grading stats
// @Summary Assignment analysis report
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} repositories.AssignmentAnalysisRow
// @Failure 403 {object} ErrorResponse
// @Router /reports/assignment-analysis [get]
func (h *DashboardHandler) GetAssignmentAnalysisReport(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	rows, err := h.service.AssignmentAnalysisReport(c.Request.Context(), actor, h.parseReportPeriod(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// GetSubjectComparisonReport compares subjects across marks and attendance
// @Summary Subject comparison report
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} repositories.SubjectComparisonRow
// @Failure 403 {object} ErrorResponse
// @Router /reports/subject-comparison [get]
func (h *DashboardHandler) GetSubjectComparisonReport(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	rows, err := h.service.SubjectComparisonReport(c.Request.Context(), actor, h.parseReportPeriod(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// GetUserActivityReport lists account activity for every user
// @Summary User activity report
// @Tags reports
// @Produce json
// @Success 200 {array} repositories.UserActivityRow
// @Failure 403 {object} ErrorResponse
// @Router /reports/user-activity [get]
func (h *DashboardHandler) GetUserActivityReport(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	rows, err := h.service.UserActivityReport(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// ===== STUDENT ENDPOINTS =====

// GetPerformanceInsights returns advisory text about the student's standing
// @Summary Performance insights
// @Description Free-text advisory generated from the student's academic snapshot
// @Tags students
// @Produce json
// @Success 200 {object} gin.H
// @Failure 403 {object} ErrorResponse
// @Router /student/insights [get]
func (h *DashboardHandler) GetPerformanceInsights(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	insights, err := h.service.PerformanceInsights(c.Request.Context(), actor, actor.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

// GetStudentResults returns the caller's semester results and GPA
// @Summary Student results
// @Tags students
// @Produce json
// @Success 200 {object} gin.H
// @Failure 403 {object} ErrorResponse
// @Router /student/results [get]
func (h *DashboardHandler) GetStudentResults(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	results, gpa, err := h.service.StudentResults(c.Request.Context(), actor, actor.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"gpa":     gpa,
	})
}
