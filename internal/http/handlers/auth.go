package handlers

import (
	"net/http"

	"bikie/internal/http/middleware"
	"bikie/internal/logging"
	"bikie/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/admin/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	token, exp, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		logging.LogEvent(middleware.GetRequestID(c), "auth", "login_failed", "admin login rejected",
			zap.String("ip", c.ClientIP()))
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": exp,
		"role":      services.RoleAdmin,
	})
}

// GET /api/admin/me
func (h *Handler) Me(c *gin.Context) {
	respondData(c, http.StatusOK, middleware.CurrentUser(c))
}
