package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the rentals views. Owners are listed as rentals.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/rentals")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/export", h.Export)
		group.GET("/:owner_id", h.Get)
		group.POST("/:owner_id/documents/:document_id/verdict", h.Verdict)
		group.POST("/:owner_id/disable", h.Disable)
		group.POST("/:owner_id/enable", h.Enable)
	}
}
