package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cargorental/admin-dashboard/internal/account"
	"github.com/cargorental/admin-dashboard/internal/pkg/response"
)

type Handler struct {
	service account.Service
}

func NewHandler(service account.Service) *Handler {
	return &Handler{service: service}
}

// Login checks the user's credentials; the backend mails a one-time code.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, "a valid email and password are required", err)
		return
	}
	if err := h.service.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "a verification code was sent to your email", "next": "verify-otp"})
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, "the code must be 4 digits", err)
		return
	}
	if err := h.service.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "code verified", "next": "confirm"})
}

// Confirm deletes the account. There is no undo.
func (h *Handler) Confirm(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, "a valid email is required", err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "your account has been deleted"})
}
