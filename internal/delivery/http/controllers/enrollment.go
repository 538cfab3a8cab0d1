package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"EduAble/internal/models"
	"EduAble/pkg/logger"
)

type EnrollmentService interface {
	Enroll(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
	UserEnrollments(ctx context.Context, userID int64) ([]models.Enrollment, error)
	CourseEnrollments(ctx context.Context, actor *models.User, courseID int64) ([]models.Enrollment, error)
	UpdateProgress(ctx context.Context, user *models.User, courseID int64, progress int) (*models.Enrollment, error)
	UserCertificates(ctx context.Context, userID int64) ([]models.Certificate, error)
	Certificate(ctx context.Context, actor *models.User, id string) (*models.Certificate, error)
}

type EnrollmentHandler struct {
	EnrollmentService EnrollmentService
	log               logger.Log
}

func NewEnrollmentHandler(l logger.Log, enrollmentService EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		EnrollmentService: enrollmentService,
		log:               l,
	}
}

type enrollRequest struct {
	CourseID int64 `json:"courseId" binding:"required"`
}

func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var input enrollRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	enrollment, err := h.EnrollmentService.Enroll(c.Request.Context(), CurrentUser(c).ID, input.CourseID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

func (h *EnrollmentHandler) MyEnrollments(c *gin.Context) {
	enrollments, err := h.EnrollmentService.UserEnrollments(c.Request.Context(), CurrentUser(c).ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, enrollments)
}

func (h *EnrollmentHandler) CourseEnrollments(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	enrollments, err := h.EnrollmentService.CourseEnrollments(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, enrollments)
}

type progressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

func (h *EnrollmentHandler) UpdateProgress(c *gin.Context) {
	raw, ok := c.Params.Get("course_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id is required"})
		return
	}
	courseID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id must be an integer"})
		return
	}

	var input progressRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	enrollment, err := h.EnrollmentService.UpdateProgress(c.Request.Context(), CurrentUser(c), courseID, *input.Progress)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) MyCertificates(c *gin.Context) {
	certificates, err := h.EnrollmentService.UserCertificates(c.Request.Context(), CurrentUser(c).ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, certificates)
}

func (h *EnrollmentHandler) CertificateByID(c *gin.Context) {
	id, ok := c.Params.Get("certificate_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "certificate_id is required"})
		return
	}
	certificate, err := h.EnrollmentService.Certificate(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, certificate)
}
