package http

// ThumbnailRequest is the query of GET /media/thumbnail.
type ThumbnailRequest struct {
	Folder string `form:"folder" binding:"required"`
	Name   string `form:"name" binding:"required"`
}
