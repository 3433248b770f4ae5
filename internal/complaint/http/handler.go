package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cargorental/admin-dashboard/internal/complaint"
	"github.com/cargorental/admin-dashboard/internal/export"
	"github.com/cargorental/admin-dashboard/internal/listing"
	"github.com/cargorental/admin-dashboard/internal/pkg/apperror"
	"github.com/cargorental/admin-dashboard/internal/pkg/format"
	"github.com/cargorental/admin-dashboard/internal/pkg/response"
	"github.com/cargorental/admin-dashboard/internal/session"
)

var errNoClient = apperror.New(http.StatusUnauthorized, "login required")

type Handler struct {
	service complaint.Service
	view    format.View
}

func NewHandler(service complaint.Service, view format.View) *Handler {
	return &Handler{service: service, view: view}
}

func (h *Handler) filtered(c *gin.Context) ([]complaint.Complaint, listing.State, bool) {
	var req ListComplaintsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, "invalid query parameters", err)
		return nil, listing.State{}, false
	}

	client := session.Client(c)
	if client == nil {
		response.Error(c, errNoClient)
		return nil, listing.State{}, false
	}

	complaints, err := h.service.List(c.Request.Context(), client)
	if err != nil {
		response.Error(c, err)
		return nil, listing.State{}, false
	}
	return complaints, req.State(req.Type, h.view.Loc()), true
}

func (h *Handler) List(c *gin.Context) {
	complaints, state, ok := h.filtered(c)
	if !ok {
		return
	}

	page := listing.VisiblePage(complaints, complaint.ListSpec, state.Filter, state.Page, h.view.Loc())
	options := listing.Options(complaints, complaint.ListSpec.Secondary)

	c.JSON(http.StatusOK, response.NewListResponse(page, state.Filter, options, func(cp complaint.Complaint) ComplaintResponse {
		return NewComplaintResponse(h.view, cp)
	}))
}

func (h *Handler) Export(c *gin.Context) {
	complaints, state, ok := h.filtered(c)
	if !ok {
		return
	}

	table := export.Table{
		Sheet:   "Complaints",
		Headers: []string{"Reference No.", "Type", "Subject", "Description", "Filed By", "Status", "Filed At"},
		Widths:  map[int]float64{0: 20, 2: 32, 3: 60, 4: 24, 6: 22},
	}
	for _, cp := range listing.Filtered(complaints, complaint.ListSpec, state.Filter, h.view.Loc()) {
		table.Rows = append(table.Rows, []any{
			cp.ReferenceNumber, cp.Type, cp.Subject, cp.Description, cp.FiledBy(),
			cp.Status.Label(), h.view.ShortDateTime(cp.CreatedAt.Time),
		})
	}

	if err := export.Respond(c, "complaints", table); err != nil {
		response.Error(c, err)
	}
}
