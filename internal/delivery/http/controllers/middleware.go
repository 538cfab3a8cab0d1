package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"EduAble/internal/models"
	"EduAble/pkg/logger"
)

const ClientCtx = "client"

// SessionMiddleware resolves the session cookie and, when valid, stores the
// authenticated *models.User in the context. It never aborts: routes that
// require authentication stack RequireAuth on top.
func (h *AuthHandler) SessionMiddleware(c *gin.Context) {
	cookie, err := c.Cookie(h.cookieName)
	if err != nil || cookie == "" {
		c.Next()
		return
	}

	userID, err := h.AuthService.Sessions().Resolve(c.Request.Context(), cookie)
	if err != nil {
		c.Next()
		return
	}

	user, err := h.AuthService.User(c.Request.Context(), userID)
	if err != nil {
		h.log.Warn("session resolved to missing user", "user_id", userID)
		c.Next()
		return
	}

	c.Set(ClientCtx, user)
	c.Next()
}

func RequireAuth(c *gin.Context) {
	if _, exists := c.Get(ClientCtx); !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.Next()
}

// RequireRoles admits only users whose role is exactly one of the allowed
// set. No role implies another here: an admin is rejected by a teacher-only
// gate. Admin overrides are granted through the capability table instead.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		for _, allowed := range allowedRoles {
			if user.Role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}

// CurrentUser returns the authenticated user set by SessionMiddleware, or
// nil for an anonymous request.
func CurrentUser(c *gin.Context) *models.User {
	userVal, exists := c.Get(ClientCtx)
	if !exists {
		return nil
	}
	user, ok := userVal.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func LoggingMiddleware(logger logger.Log) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		path := c.Request.URL.Path
		rawQuery := c.Request.URL.RawQuery
		if rawQuery != "" {
			path = fmt.Sprintf("%s?%s", path, rawQuery)
		}
		status := c.Writer.Status()

		msg := fmt.Sprintf("%s %s", method, path)

		logger.Info(msg,
			"status", status,
			"latency", latency,
			"client_ip", clientIP,
		)

		for _, ginErr := range c.Errors {
			logger.ErrorErr("HTTP request error", ginErr.Err,
				"status", status,
				"method", method,
				"path", path,
			)
		}
	}
}
