package api

import (
	"alcyxob/training-app/internal/domain"
	"alcyxob/training-app/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CertificateHandler exposes the completion-certificate upload flow.
type CertificateHandler struct {
	certificateService service.CertificateService
}

// NewCertificateHandler creates a new CertificateHandler.
func NewCertificateHandler(certificateService service.CertificateService) *CertificateHandler {
	return &CertificateHandler{certificateService: certificateService}
}

// --- DTOs for API (Data Transfer Objects) ---

// UploadURLRequest asks for a presigned upload URL.
type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// ConfirmCertificateRequest reports a completed upload.
type ConfirmCertificateRequest struct {
	ObjectKey   string `json:"objectKey" binding:"required"`
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize"`
	ContentType string `json:"contentType"`
}

// CertificateResponse is the DTO for certificate metadata.
type CertificateResponse struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"courseId"`
	TraineeID   string    `json:"traineeId"`
	FileName    string    `json:"fileName,omitempty"`
	ContentType string    `json:"contentType,omitempty"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

func mapCertificateToResponse(cert *domain.Certificate) CertificateResponse {
	return CertificateResponse{
		ID:          cert.ID.Hex(),
		CourseID:    cert.CourseID.Hex(),
		TraineeID:   cert.TraineeID.Hex(),
		FileName:    cert.FileName,
		ContentType: cert.ContentType,
		Size:        cert.Size,
		UploadedAt:  cert.UploadedAt,
	}
}

// --- Handler Methods ---

// RequestUploadURL handles POST /courses/:id/certificate/upload-url.
func (h *CertificateHandler) RequestUploadURL(c *gin.Context) {
	courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid course ID format.")
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	resp, err := h.certificateService.RequestUploadURL(c.Request.Context(), courseID, req.ContentType)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ConfirmUpload handles POST /courses/:id/certificate.
func (h *CertificateHandler) ConfirmUpload(c *gin.Context) {
	courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid course ID format.")
		return
	}

	var req ConfirmCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	cert, err := h.certificateService.ConfirmUpload(c.Request.Context(), courseID, req.ObjectKey, req.FileName, req.FileSize, req.ContentType)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mapCertificateToResponse(cert))
}

// GetDownloadURL handles GET /courses/:id/certificate/download-url.
func (h *CertificateHandler) GetDownloadURL(c *gin.Context) {
	courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid course ID format.")
		return
	}

	downloadURL, err := h.certificateService.GetDownloadURL(c.Request.Context(), courseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloadUrl": downloadURL})
}
