package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/vehicles")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/export", h.Export)
		group.GET("/:vehicle_id", h.Get)
		group.POST("/:vehicle_id/documents/:document_id/verdict", h.Verdict)
	}
}
