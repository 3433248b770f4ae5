package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cargorental/admin-dashboard/internal/media"
	"github.com/cargorental/admin-dashboard/internal/pkg/response"
)

type MediaHandler struct {
	service *media.Service
}

func NewMediaHandler(service *media.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

// Thumbnail handles GET /media/thumbnail?folder=&name=.
func (h *MediaHandler) Thumbnail(c *gin.Context) {
	var req ThumbnailRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, media.ErrInvalidPath)
		return
	}

	data, err := h.service.Thumbnail(c.Request.Context(), req.Folder, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Cache-Control", "private, max-age=86400")
	c.Data(http.StatusOK, "image/jpeg", data)
}
