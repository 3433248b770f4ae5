package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cargorental/admin-dashboard/internal/auth"
	"github.com/cargorental/admin-dashboard/internal/pkg/response"
	"github.com/cargorental/admin-dashboard/internal/session"
)

// DashboardPath is where a successful login lands.
const DashboardPath = "/dashboard"

type AuthHandler struct {
	authService auth.Service
	manager     *session.Manager
	secure      bool
}

// NewAuthHandler creates the login handler. secure marks the session cookie
// as HTTPS-only.
func NewAuthHandler(authService auth.Service, manager *session.Manager, secure bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		manager:     manager,
		secure:      secure,
	}
}

//
// POST /auth/login
//

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, auth.ErrCodeRequired)
		return
	}

	sess, cookie, err := h.authService.Login(c.Request.Context(), req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	session.SetCookie(c, cookie, h.manager, h.secure)
	c.JSON(http.StatusOK, LoginResponse{
		SessionToken: cookie,
		ExpiresAt:    sess.ExpiresAt,
		Redirect:     DashboardPath,
	})
}

//
// POST /auth/logout
//

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), session.CookieValue(c)); err != nil {
		response.Error(c, err)
		return
	}
	session.ClearCookie(c, h.secure)
	c.JSON(http.StatusOK, gin.H{"message": "logged out", "redirect": session.LoginPath})
}
