package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
	"github.com/acadboost/academic-service/internal/services"
	"github.com/acadboost/academic-service/internal/utils"
)

type AdminHandler struct {
	BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  NewBaseHandler(logger),
		adminService: adminService,
	}
}

// ===== USER MANAGEMENT =====

// CreateUser registers a new user account
// @Summary Create user
// @Tags admin
// @Accept json
// @Produce json
// @Param user body services.CreateUserRequest true "User data"
// @Success 201 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/users [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.adminService.CreateUser(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser patches an existing user account
// @Summary Update user
// @Tags admin
// @Accept json
// @Produce json
// @Param id path uint true "User ID"
// @Param user body services.UpdateUserRequest true "Fields to update"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.adminService.UpdateUser(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers lists user accounts with optional filters
// @Summary List users
// @Tags admin
// @Produce json
// @Param role query string false "Filter by role"
// @Param department query string false "Filter by department label"
// @Param active_only query bool false "Only active accounts"
// @Param q query string false "Match against username or full name"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	filters := repositories.UserFilters{
		ActiveOnly: c.Query("active_only") == "true",
		Query:      c.Query("q"),
		Limit:      h.parseIntQuery(c, "limit", 50),
		Offset:     h.parseIntQuery(c, "offset", 0),
	}
	if roleStr := c.Query("role"); roleStr != "" {
		role := models.UserRole(roleStr)
		filters.Role = &role
	}
	if dept := c.Query("department"); dept != "" {
		filters.Department = &dept
	}

	users, total, err := h.adminService.ListUsers(c.Request.Context(), actor, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
	})
}

// ===== DEPARTMENTS =====

// CreateDepartment creates a department
// @Summary Create department
// @Tags admin
// @Accept json
// @Produce json
// @Param department body services.CreateDepartmentRequest true "Department data"
// @Success 201 {object} models.Department
// @Failure 400 {object} ErrorResponse
// @Router /admin/departments [post]
func (h *AdminHandler) CreateDepartment(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	department, err := h.adminService.CreateDepartment(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, department)
}

// ListDepartments lists all departments
// @Summary List departments
// @Tags admin
// @Produce json
// @Success 200 {array} models.Department
// @Failure 403 {object} ErrorResponse
// @Router /admin/departments [get]
func (h *AdminHandler) ListDepartments(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	departments, err := h.adminService.ListDepartments(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, departments)
}

// ===== SUBJECTS =====

// CreateSubject creates a subject inside a department
// @Summary Create subject
// @Tags admin
// @Accept json
// @Produce json
// @Param subject body services.CreateSubjectRequest true "Subject data"
// @Success 201 {object} models.Subject
// @Failure 400 {object} ErrorResponse
// @Router /admin/subjects [post]
func (h *AdminHandler) CreateSubject(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	subject, err := h.adminService.CreateSubject(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, subject)
}

// UpdateSubject updates a subject
// @Summary Update subject
// @Tags admin
// @Accept json
// @Produce json
// @Param id path uint true "Subject ID"
// @Param subject body services.UpdateSubjectRequest true "Fields to update"
// @Success 200 {object} models.Subject
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/subjects/{id} [put]
func (h *AdminHandler) UpdateSubject(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	subject, err := h.adminService.UpdateSubject(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subject)
}

// ListSubjects lists subjects; teachers only see their own
// @Summary List subjects
// @Tags admin
// @Produce json
// @Param department_id query int false "Filter by department"
// @Param teacher_id query int false "Filter by teacher"
// @Param semester query int false "Filter by semester"
// @Success 200 {array} models.Subject
// @Failure 403 {object} ErrorResponse
// @Router /admin/subjects [get]
func (h *AdminHandler) ListSubjects(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	filters := repositories.SubjectFilters{
		Limit:  h.parseIntQuery(c, "limit", 100),
		Offset: h.parseIntQuery(c, "offset", 0),
	}
	if v := c.Query("department_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			deptID := uint(id)
			filters.DepartmentID = &deptID
		}
	}
	if v := c.Query("teacher_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			teacherID := uint(id)
			filters.TeacherID = &teacherID
		}
	}
	if v := c.Query("semester"); v != "" {
		if semester, err := strconv.Atoi(v); err == nil {
			filters.Semester = &semester
		}
	}

	subjects, err := h.adminService.ListSubjects(c.Request.Context(), actor, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subjects)
}

// ===== ENROLLMENTS AND RESULTS =====

// EnrollStudent enrolls a student into a subject
// @Summary Enroll student
// @Tags admin
// @Accept json
// @Produce json
// @Param enrollment body services.EnrollRequest true "Enrollment data"
// @Success 201 {object} models.Enrollment
// @Failure 400 {object} ErrorResponse
// @Router /admin/enrollments [post]
func (h *AdminHandler) EnrollStudent(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	enrollment, err := h.adminService.EnrollStudent(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

// UpsertResult records or replaces a semester result row
// @Summary Upsert result
// @Tags admin
// @Accept json
// @Produce json
// @Param result body services.UpsertResultRequest true "Result marks"
// @Success 200 {object} models.Result
// @Failure 400 {object} ErrorResponse
// @Router /admin/results [post]
func (h *AdminHandler) UpsertResult(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.UpsertResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.adminService.UpsertResult(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
