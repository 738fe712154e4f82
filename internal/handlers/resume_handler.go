package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadboost/academic-service/internal/services"
	"github.com/acadboost/academic-service/internal/utils"
)

type ResumeHandler struct {
	BaseHandler
	service services.ResumeService
}

func NewResumeHandler(service services.ResumeService, logger utils.Logger) *ResumeHandler {
	return &ResumeHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// BuildResume creates a resume from structured content
// @Summary Build resume
// @Tags resumes
// @Accept json
// @Produce json
// @Param resume body services.BuildResumeRequest true "Resume title and content"
// @Success 201 {object} models.Resume
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /student/resumes [post]
func (h *ResumeHandler) BuildResume(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.BuildResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resume, err := h.service.Build(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resume)
}

// UploadResume stores an uploaded resume file
// @Summary Upload resume
// @Tags resumes
// @Accept multipart/form-data
// @Produce json
// @Param title formData string false "Resume title (defaults to file name)"
// @Param file formData file true "Resume file"
// @Success 201 {object} models.Resume
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /student/resumes/upload [post]
func (h *ResumeHandler) UploadResume(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid upload",
			Details: "a file form field is required",
		})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid upload",
			Details: err.Error(),
		})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid upload",
			Details: err.Error(),
		})
		return
	}

	resume, err := h.service.Upload(c.Request.Context(), actor,
		c.PostForm("title"), fileHeader.Filename, fileHeader.Size, data)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resume)
}

// AnalyzeResume stores advisory feedback for a resume
// @Summary Analyze resume
// @Tags resumes
// @Produce json
// @Param id path uint true "Resume ID"
// @Success 200 {object} models.Resume
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /student/resumes/{id}/analyze [post]
func (h *ResumeHandler) AnalyzeResume(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	actor, ok := h.identity(c)
	if !ok {
		return
	}

	resume, err := h.service.Analyze(c.Request.Context(), actor, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resume)
}

// ListResumes lists the caller's resumes
// @Summary List resumes
// @Tags resumes
// @Produce json
// @Success 200 {array} models.Resume
// @Failure 403 {object} ErrorResponse
// @Router /student/resumes [get]
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	resumes, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resumes)
}

// DeleteResume removes a resume and its stored file
// @Summary Delete resume
// @Tags resumes
// @Produce json
// @Param id path uint true "Resume ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /student/resumes/{id} [delete]
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	actor, ok := h.identity(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Resume deleted"})
}

// DownloadResume returns the resume as a file download
// @Summary Download resume
// @Tags resumes
// @Produce application/pdf
// @Param id path uint true "Resume ID"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /student/resumes/{id}/download [get]
func (h *ResumeHandler) DownloadResume(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	actor, ok := h.identity(c)
	if !ok {
		return
	}

	data, fileName, err := h.service.RenderPDF(c.Request.Context(), actor, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendFile(c, data, fileName, contentTypePDF)
}
