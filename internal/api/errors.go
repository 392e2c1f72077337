package api

import (
	"alcyxob/training-app/internal/domain"
	"alcyxob/training-app/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service-layer errors onto HTTP responses.
// Validation failures carry the field-keyed map through unchanged so the
// form layer can attach messages to fields.
func respondServiceError(c *gin.Context, err error) {
	var validationErrs domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErrs})
		return
	}

	switch {
	case errors.Is(err, service.ErrTraineeNotFound),
		errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrCertificateNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyCompleted),
		errors.Is(err, service.ErrNotYetElapsed),
		errors.Is(err, service.ErrCourseNotCompleted),
		errors.Is(err, service.ErrCertificateExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrReasonRequired),
		errors.Is(err, service.ErrInvalidAward):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
