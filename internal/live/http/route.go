package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *LiveHandler, authMiddleware gin.HandlerFunc) {
	g.GET("/live", authMiddleware, h.ServeWS)
}
