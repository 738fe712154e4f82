package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acadboost/academic-service/internal/repositories"
	"github.com/acadboost/academic-service/internal/services"
	"github.com/acadboost/academic-service/internal/utils"
)

type AttendanceHandler struct {
	BaseHandler
	service services.AttendanceService
}

func NewAttendanceHandler(service services.AttendanceService, logger utils.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// MarkAttendance records attendance for a subject on a single day
// @Summary Mark attendance
// @Description Upserts one row per entry; re-marking a day overwrites it
// @Tags attendance
// @Accept json
// @Produce json
// @Param attendance body services.MarkAttendanceRequest true "Subject, date and entries"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /teacher/attendance [post]
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	marked, err := h.service.Mark(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked": marked})
}

// ListBySubjectDate lists attendance rows for a subject on one day
// @Summary List attendance by subject and date
// @Tags attendance
// @Produce json
// @Param id path uint true "Subject ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} models.Attendance
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /teacher/subjects/{id}/attendance [get]
func (h *AttendanceHandler) ListBySubjectDate(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	actor, ok := h.identity(c)
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid date",
			Details: "date must be in YYYY-MM-DD format",
		})
		return
	}

	rows, err := h.service.ListBySubjectDate(c.Request.Context(), actor, id, date)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// GetSubjectOverview aggregates per-student attendance across a subject
// @Summary Subject attendance overview
// @Tags attendance
// @Produce json
// @Param id path uint true "Subject ID"
// @Success 200 {array} repositories.SubjectAttendanceRow
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /teacher/subjects/{id}/attendance/overview [get]
func (h *AttendanceHandler) GetSubjectOverview(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	actor, ok := h.identity(c)
	if !ok {
		return
	}

	rows, err := h.service.SubjectOverview(c.Request.Context(), actor, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	overview := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		overview = append(overview, gin.H{
			"student_id":   row.StudentID,
			"student_name": row.StudentName,
			"present":      row.Present,
			"absent":       row.Absent,
			"late":         row.Late,
			"total":        row.Total,
			"present_rate": row.PresentRate(),
		})
	}
	c.JSON(http.StatusOK, overview)
}

// GetStudentStats returns the caller's attendance counters
// @Summary Student attendance stats
// @Tags attendance
// @Produce json
// @Param subject_id query int false "Restrict to a single subject"
// @Success 200 {object} gin.H
// @Failure 403 {object} ErrorResponse
// @Router /student/attendance/stats [get]
func (h *AttendanceHandler) GetStudentStats(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var subjectID *uint
	if v := c.Query("subject_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			sid := uint(id)
			subjectID = &sid
		}
	}

	stats, err := h.service.StudentStats(c.Request.Context(), actor, actor.ID, subjectID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"present":      stats.Present,
		"absent":       stats.Absent,
		"late":         stats.Late,
		"total":        stats.Total,
		"present_rate": stats.PresentRate(),
	})
}

// GetStudentHistory lists the caller's attendance rows
// @Summary Student attendance history
// @Tags attendance
// @Produce json
// @Param subject_id query int false "Restrict to a single subject"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} models.Attendance
// @Failure 403 {object} ErrorResponse
// @Router /student/attendance [get]
func (h *AttendanceHandler) GetStudentHistory(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	filters := repositories.AttendanceFilters{
		Limit:  h.parseIntQuery(c, "limit", 100),
		Offset: h.parseIntQuery(c, "offset", 0),
	}
	if v := c.Query("subject_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			sid := uint(id)
			filters.SubjectID = &sid
		}
	}
	if v := c.Query("from"); v != "" {
		if from, err := time.Parse("2006-01-02", v); err == nil {
			filters.DateFrom = &from
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err := time.Parse("2006-01-02", v); err == nil {
			filters.DateTo = &to
		}
	}

	rows, err := h.service.StudentHistory(c.Request.Context(), actor, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}
