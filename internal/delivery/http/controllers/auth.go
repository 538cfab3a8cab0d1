package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"EduAble/internal/app_errors"
	"EduAble/internal/metrics"
	"EduAble/internal/models"
	"EduAble/internal/service/auth"
	"EduAble/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, input auth.RegisterInput) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	User(ctx context.Context, id int64) (*models.User, error)
	UpdateAccessibilitySettings(ctx context.Context, userID int64, patch models.AccessibilitySettingsPatch) (*models.User, error)
	Sessions() *auth.SessionManager
}

type AuthHandler struct {
	AuthService AuthService
	log         logger.Log
	cookieName  string
}

func NewAuthHandler(l logger.Log, authService AuthService, cookieName string) *AuthHandler {
	return &AuthHandler{
		AuthService: authService,
		log:         l,
		cookieName:  cookieName,
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input registerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.AuthService.Register(c.Request.Context(), auth.RegisterInput{
		Username: input.Username,
		Password: input.Password,
		Email:    input.Email,
		FullName: input.FullName,
		Role:     input.Role,
	})
	if err != nil {
		// Registration failures answer with a plain-text reason.
		if errors.Is(err, app_errors.ErrDuplicateUsername) ||
			errors.Is(err, app_errors.ErrDuplicateEmail) ||
			errors.Is(err, app_errors.ErrValidation) {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, h.log, err)
		return
	}

	if err := h.establishSession(c, user.ID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input loginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.AuthService.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, app_errors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		respondError(c, h.log, err)
		return
	}

	if err := h.establishSession(c, user.ID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie != "" {
		if err := h.AuthService.Sessions().Destroy(c.Request.Context(), cookie); err != nil {
			h.log.ErrorErr("failed to destroy session", err)
		}
	}
	h.clearCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateSettingsRequest struct {
	Settings models.AccessibilitySettingsPatch `json:"settings"`
}

// UpdateAccessibilitySettings applies a partial update sent as a `settings`
// envelope. The body is decoded strictly so a misspelled or unknown setting
// is rejected instead of silently dropped.
func (h *AuthHandler) UpdateAccessibilitySettings(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input updateSettingsRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.AuthService.UpdateAccessibilitySettings(c.Request.Context(), user.ID, input.Settings)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *AuthHandler) establishSession(c *gin.Context, userID int64) error {
	cookie, err := h.AuthService.Sessions().Establish(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	maxAge := int(h.AuthService.Sessions().TTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, cookie, maxAge, "/", "", false, true)
	metrics.SessionsEstablished.Inc()
	return nil
}

func (h *AuthHandler) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
}
