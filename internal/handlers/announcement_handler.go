package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadboost/academic-service/internal/repositories"
	"github.com/acadboost/academic-service/internal/services"
	"github.com/acadboost/academic-service/internal/utils"
)

type AnnouncementHandler struct {
	BaseHandler
	service services.AnnouncementService
}

func NewAnnouncementHandler(service services.AnnouncementService, logger utils.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// PublishAnnouncement creates an announcement and notifies every matching user
// @Summary Publish announcement
// @Description Creates the announcement and fans out notifications in one transaction
// @Tags announcements
// @Accept json
// @Produce json
// @Param announcement body services.CreateAnnouncementRequest true "Announcement data"
// @Success 201 {object} services.PublishResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /teacher/announcements [post]
func (h *AnnouncementHandler) PublishAnnouncement(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.service.Publish(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ListAnnouncements lists announcements, newest first
// @Summary List announcements
// @Tags announcements
// @Produce json
// @Param active_only query bool false "Only active announcements"
// @Success 200 {array} models.Announcement
// @Router /announcements [get]
func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	filters := repositories.AnnouncementFilters{
		ActiveOnly: c.DefaultQuery("active_only", "true") == "true",
		Limit:      h.parseIntQuery(c, "limit", 50),
		Offset:     h.parseIntQuery(c, "offset", 0),
	}

	announcements, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, announcements)
}

// ActivateAnnouncement restores a previously deactivated announcement
// @Summary Activate announcement
// @Tags announcements
// @Produce json
// @Param id path uint true "Announcement ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /teacher/announcements/{id}/activate [post]
func (h *AnnouncementHandler) ActivateAnnouncement(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	actor, ok := h.identity(c)
	if !ok {
		return
	}

	if err := h.service.Activate(c.Request.Context(), actor, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Announcement activated"})
}

// DeactivateAnnouncement hides an announcement without deleting it
// @Summary Deactivate announcement
// @Tags announcements
// @Produce json
// @Param id path uint true "Announcement ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /teacher/announcements/{id}/deactivate [post]
func (h *AnnouncementHandler) DeactivateAnnouncement(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	actor, ok := h.identity(c)
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), actor, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Announcement deactivated"})
}

// DeleteAnnouncement removes an announcement
// @Summary Delete announcement
// @Tags announcements
// @Produce json
// @Param id path uint true "Announcement ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /teacher/announcements/{id} [delete]
func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
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

	c.JSON(http.StatusOK, SuccessResponse{Message: "Announcement deleted"})
}
