package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadboost/academic-service/internal/services"
	"github.com/acadboost/academic-service/internal/utils"
)

type CertificateHandler struct {
	BaseHandler
	service services.CertificateService
}

func NewCertificateHandler(service services.CertificateService, logger utils.Logger) *CertificateHandler {
	return &CertificateHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// IssueCertificate issues a certificate to a student
// @Summary Issue certificate
// @Tags certificates
// @Accept json
// @Produce json
// @Param certificate body services.IssueCertificateRequest true "Certificate data"
// @Success 201 {object} models.Certificate
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /teacher/certificates [post]
func (h *CertificateHandler) IssueCertificate(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.IssueCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	cert, err := h.service.Issue(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cert)
}

// VerifyCertificate is the public verification endpoint; no session required
// @Summary Verify certificate
// @Description Looks up a certificate by its shareable code
// @Tags certificates
// @Produce json
// @Param code path string true "Verification code"
// @Success 200 {object} services.CertificateVerification
// @Router /verify/{code} [get]
func (h *CertificateHandler) VerifyCertificate(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid code",
			Details: "code cannot be empty",
		})
		return
	}

	verification, err := h.service.Verify(c.Request.Context(), code)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, verification)
}

// ListStudentCertificates lists the caller's certificates
// @Summary List student certificates
// @Tags certificates
// @Produce json
// @Success 200 {array} models.Certificate
// @Failure 403 {object} ErrorResponse
// @Router /student/certificates [get]
func (h *CertificateHandler) ListStudentCertificates(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	certs, err := h.service.ListByStudent(c.Request.Context(), actor, actor.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, certs)
}

// ListCertificates lists all issued certificates
// @Summary List certificates
// @Tags certificates
// @Produce json
// @Success 200 {object} gin.H
// @Failure 403 {object} ErrorResponse
// @Router /teacher/certificates [get]
func (h *CertificateHandler) ListCertificates(c *gin.Context) {
	actor, ok := h.identity(c)
	if !ok {
		return
	}

	certs, total, err := h.service.List(c.Request.Context(), actor,
		h.parseIntQuery(c, "limit", 50), h.parseIntQuery(c, "offset", 0))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"certificates": certs,
		"total":        total,
	})
}

// DownloadCertificate renders the certificate as a PDF attachment
// @Summary Download certificate PDF
// @Tags certificates
// @Produce application/pdf
// @Param id path uint true "Certificate ID"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /student/certificates/{id}/download [get]
func (h *CertificateHandler) DownloadCertificate(c *gin.Context) {
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
