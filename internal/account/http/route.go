package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the public account deletion flow.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/account/delete")
	{
		group.POST("/login", h.Login)
		group.POST("/verify-otp", h.VerifyOTP)
		group.POST("/confirm", h.Confirm)
	}
}
