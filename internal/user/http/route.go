package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddleware gin.HandlerFunc) {
	usersGroup := g.Group("/users")

	// === Authenticated Routes ===
	usersGroup.Use(authMiddleware)
	{
		usersGroup.GET("", h.List)
		usersGroup.GET("/export", h.Export)
		usersGroup.GET("/:id", h.Get)
	}
}
