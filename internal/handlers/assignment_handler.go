package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadboost/academic-service/internal/services"
	"github.com/acadboost/academic-service/internal/utils"
)

type AssignmentHandler struct {
	BaseHandler
	service services.AssignmentService
}

func NewAssignmentHandler(service services.AssignmentService, logger utils.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateAssignment creates an assignment for one of the teacher's subjects
// @Summary Create assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Param assignment body services.CreateAssignmentRequest true "Assignment data"
// @Success 201 {object} models.Assignment
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /teacher/assignments [post]
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	assignment, err := h.service.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// UpdateAssignment updates an assignment owned by the caller
// @Summary Update assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path uint true "Assignment ID"
// @Param assignment body services.UpdateAssignmentRequest true "Fields to update"
// @Success 200 {object} models.Assignment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /teacher/assignments/{id} [put]
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	assignment, err := h.service.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// ListTeacherAssignments lists assignments across the teacher's subjects
// @Summary List teacher assignments
// @Tags assignments
// @Produce json
// @Param active_only query bool false "Only active assignments"
// @Success 200 {array} models.Assignment
// @Failure 403 {object} ErrorResponse
// @Router /teacher/assignments [get]
func (h *AssignmentHandler) ListTeacherAssignments(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	assignments, err := h.service.ListByTeacher(c.Request.Context(), actor, c.Query("active_only") == "true")
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// ListStudentAssignments lists assignments in the student's enrolled subjects
// with submission state and deadline classification
// @Summary List student assignments
// @Tags assignments
// @Produce json
// @Success 200 {array} services.StudentAssignmentView
// @Failure 403 {object} ErrorResponse
// @Router /student/assignments [get]
func (h *AssignmentHandler) ListStudentAssignments(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	views, err := h.service.ListForStudent(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// SubmitAssignment records or replaces the student's submission
// @Summary Submit assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path uint true "Assignment ID"
// @Param submission body services.SubmitAssignmentRequest true "Submission content"
// @Success 201 {object} models.AssignmentSubmission
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /student/assignments/{id}/submit [post]
func (h *AssignmentHandler) SubmitAssignment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.SubmitAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	submission, err := h.service.Submit(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

// GradeSubmission assigns marks and feedback to a submission
// @Summary Grade assignment submission
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path uint true "Submission ID"
// @Param grade body services.GradeRequest true "Marks and feedback"
// @Success 200 {object} models.AssignmentSubmission
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /teacher/submissions/{id}/grade [post]
func (h *AssignmentHandler) GradeSubmission(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	submission, err := h.service.Grade(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// ListSubmissions lists all submissions for an assignment
// @Summary List assignment submissions
// @Tags assignments
// @Produce json
// @Param id path uint true "Assignment ID"
// @Success 200 {array} models.AssignmentSubmission
// @Failure 403 {object} ErrorResponse
// @Router /teacher/assignments/{id}/submissions [get]
func (h *AssignmentHandler) ListSubmissions(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	actor, ok := h.identity(c)
	if !ok {
		return
	}

	submissions, err := h.service.ListSubmissions(c.Request.Context(), actor, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}
