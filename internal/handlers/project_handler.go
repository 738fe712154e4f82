package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadboost/academic-service/internal/services"
	"github.com/acadboost/academic-service/internal/utils"
)

type ProjectHandler struct {
	BaseHandler
	service services.ProjectService
}

func NewProjectHandler(service services.ProjectService, logger utils.Logger) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateProject creates a project for one of the teacher's subjects
// @Summary Create project
// @Tags projects
// @Accept json
// @Produce json
// @Param project body services.CreateProjectRequest true "Project data"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /teacher/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	project, err := h.service.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// UpdateProject updates a project owned by the caller
// @Summary Update project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path uint true "Project ID"
// @Param project body services.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /teacher/projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	project, err := h.service.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListTeacherProjects lists projects across the teacher's subjects
// @Summary List teacher projects
// @Tags projects
// @Produce json
// @Param active_only query bool false "Only active projects"
// @Success 200 {array} models.Project
// @Failure 403 {object} ErrorResponse
// @Router /teacher/projects [get]
func (h *ProjectHandler) ListTeacherProjects(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	projects, err := h.service.ListByTeacher(c.Request.Context(), actor, c.Query("active_only") == "true")
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// ListStudentProjects lists projects in the student's enrolled subjects
// @Summary List student projects
// @Tags projects
// @Produce json
// @Success 200 {array} services.StudentProjectView
// @Failure 403 {object} ErrorResponse
// @Router /student/projects [get]
func (h *ProjectHandler) ListStudentProjects(c *gin.Context) {
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

// SubmitProject records or replaces the student's project submission
// @Summary Submit project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path uint true "Project ID"
// @Param submission body services.SubmitProjectRequest true "Submission content"
// @Success 201 {object} models.ProjectSubmission
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /student/projects/{id}/submit [post]
func (h *ProjectHandler) SubmitProject(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.SubmitProjectRequest
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

// GradeSubmission assigns marks and feedback to a project submission
// @Summary Grade project submission
// @Tags projects
// @Accept json
// @Produce json
// @Param id path uint true "Submission ID"
// @Param grade body services.GradeRequest true "Marks and feedback"
// @Success 200 {object} models.ProjectSubmission
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /teacher/project-submissions/{id}/grade [post]
func (h *ProjectHandler) GradeSubmission(c *gin.Context) {
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

// ListSubmissions lists all submissions for a project
// @Summary List project submissions
// @Tags projects
// @Produce json
// @Param id path uint true "Project ID"
// @Success 200 {array} models.ProjectSubmission
// @Failure 403 {object} ErrorResponse
// @Router /teacher/projects/{id}/submissions [get]
func (h *ProjectHandler) ListSubmissions(c *gin.Context) {
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
