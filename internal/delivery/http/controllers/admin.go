package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"EduAble/internal/models"
	"EduAble/internal/service/admin"
	"EduAble/pkg/logger"
)

type AdminService interface {
	Users(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, userID int64, role string) (*models.User, error)
	Analytics(ctx context.Context) (*admin.Analytics, error)
	ExportAnalytics(ctx context.Context) ([]byte, error)
}

type AdminHandler struct {
	AdminService AdminService
	log          logger.Log
}

func NewAdminHandler(l logger.Log, adminService AdminService) *AdminHandler {
	return &AdminHandler{
		AdminService: adminService,
		log:          l,
	}
}

func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.AdminService.Users(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	raw, ok := c.Params.Get("user_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be an integer"})
		return
	}

	var input updateRoleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.AdminService.UpdateUserRole(c.Request.Context(), userID, input.Role)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	analytics, err := h.AdminService.Analytics(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

func (h *AdminHandler) ExportAnalytics(c *gin.Context) {
	workbook, err := h.AdminService.ExportAnalytics(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	filename := fmt.Sprintf("analytics-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
