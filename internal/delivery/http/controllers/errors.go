package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"EduAble/internal/app_errors"
	"EduAble/pkg/logger"
)

// respondError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is logged and surfaced as a bare 500.
func respondError(c *gin.Context, log logger.Log, err error) {
	switch {
	case errors.Is(err, app_errors.ErrValidation),
		errors.Is(err, app_errors.ErrNotImage),
		errors.Is(err, app_errors.ErrFileSize):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrUnauthorized),
		errors.Is(err, app_errors.ErrInvalidCredentials),
		errors.Is(err, app_errors.ErrSessionNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrForbidden),
		errors.Is(err, app_errors.ErrCourseNotCompleted):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrUserNotFound),
		errors.Is(err, app_errors.ErrCourseNotFound),
		errors.Is(err, app_errors.ErrEnrollmentNotFound),
		errors.Is(err, app_errors.ErrMaterialNotFound),
		errors.Is(err, app_errors.ErrReviewNotFound),
		errors.Is(err, app_errors.ErrCertificateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrDuplicateUsername),
		errors.Is(err, app_errors.ErrDuplicateEmail),
		errors.Is(err, app_errors.ErrAlreadyEnrolled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrSearchUnavailable),
		errors.Is(err, app_errors.ErrThumbnailsUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.ErrorErr("unhandled request error", err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
