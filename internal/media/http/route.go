package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *MediaHandler, authMiddleware gin.HandlerFunc) {
	media := g.Group("/media", authMiddleware)
	{
		media.GET("/thumbnail", h.Thumbnail)
	}
}
