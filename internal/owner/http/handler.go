package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cargorental/admin-dashboard/internal/export"
	"github.com/cargorental/admin-dashboard/internal/listing"
	"github.com/cargorental/admin-dashboard/internal/owner"
	"github.com/cargorental/admin-dashboard/internal/pkg/apperror"
	"github.com/cargorental/admin-dashboard/internal/pkg/format"
	"github.com/cargorental/admin-dashboard/internal/pkg/response"
	"github.com/cargorental/admin-dashboard/internal/session"
	"github.com/cargorental/admin-dashboard/internal/vehicle"
	"github.com/cargorental/admin-dashboard/internal/verdict"
)

var errNoClient = apperror.New(http.StatusUnauthorized, "login required")

type Handler struct {
	service owner.Service
	view    format.View
}

func NewHandler(service owner.Service, view format.View) *Handler {
	return &Handler{service: service, view: view}
}

func (h *Handler) filtered(c *gin.Context) ([]owner.Owner, listing.State, bool) {
	var req ListOwnersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, "invalid query parameters", err)
		return nil, listing.State{}, false
	}

	client := session.Client(c)
	if client == nil {
		response.Error(c, errNoClient)
		return nil, listing.State{}, false
	}

	owners, err := h.service.List(c.Request.Context(), client)
	if err != nil {
		response.Error(c, err)
		return nil, listing.State{}, false
	}
	return owners, req.State(req.Province, h.view.Loc()), true
}

// List returns one page of the filtered rentals list.
func (h *Handler) List(c *gin.Context) {
	owners, state, ok := h.filtered(c)
	if !ok {
		return
	}

	page := listing.VisiblePage(owners, owner.ListSpec, state.Filter, state.Page, h.view.Loc())
	options := listing.Options(owners, owner.ListSpec.Secondary)

	c.JSON(http.StatusOK, response.NewListResponse(page, state.Filter, options, func(o owner.Owner) OwnerListItem {
		return NewOwnerListItem(h.view, o)
	}))
}

func (h *Handler) Export(c *gin.Context) {
	owners, state, ok := h.filtered(c)
	if !ok {
		return
	}

	table := export.Table{
		Sheet:   "Rentals",
		Headers: []string{"ID", "Rental", "Owner", "Email", "Phone", "City", "Province", "Status", "Joined"},
		Widths:  map[int]float64{1: 28, 2: 24, 3: 30, 4: 18, 8: 22},
	}
	for _, o := range listing.Filtered(owners, owner.ListSpec, state.Filter, h.view.Loc()) {
		table.Rows = append(table.Rows, []any{
			o.ID, o.CarRentalName, o.Name(), o.Email, o.PhoneNo, o.City, o.Province,
			o.Status.Label(), h.view.ShortDateTime(o.CreatedAt.Time),
		})
	}

	if err := export.Respond(c, "rentals", table); err != nil {
		response.Error(c, err)
	}
}

// Get returns the owner detail view with its filtered car list.
func (h *Handler) Get(c *gin.Context) {
	var uri OwnerURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid request", err)
		return
	}
	var req OwnerCarsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, "invalid query parameters", err)
		return
	}

	client := session.Client(c)
	if client == nil {
		response.Error(c, errNoClient)
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), client, uri.OwnerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	state := req.State(req.VehicleType, h.view.Loc())
	page := listing.VisiblePage(o.Cars, owner.CarsSpec, state.Filter, state.Page, h.view.Loc())
	cars := response.NewListResponse(page, state.Filter, listing.Options(o.Cars, owner.CarsSpec.Secondary), func(car vehicle.Car) OwnerCarItem {
		return NewOwnerCarItem(h.view, car)
	})

	c.JSON(http.StatusOK, NewOwnerDetailResponse(h.view, o, cars))
}

// Verdict approves or rejects the owner's submitted document.
func (h *Handler) Verdict(c *gin.Context) {
	var uri DocumentVerdictURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid request", err)
		return
	}
	var body VerdictRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, "invalid request body", err)
		return
	}

	client := session.Client(c)
	if client == nil {
		response.Error(c, errNoClient)
		return
	}

	req := verdict.Request{
		TargetID:   uri.OwnerID,
		DocumentID: uri.DocumentID,
		Verdict:    strings.ToUpper(strings.TrimSpace(body.Verdict)),
		SessionID:  sessionID(c),
	}
	if err := h.service.Verdict(c.Request.Context(), client, req); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verdict submitted", "verdict": req.Verdict})
}

// Disable disables the owner's account. A reason is required.
func (h *Handler) Disable(c *gin.Context) {
	h.setAccountState(c, true)
}

// Enable re-enables a disabled account.
func (h *Handler) Enable(c *gin.Context) {
	h.setAccountState(c, false)
}

func (h *Handler) setAccountState(c *gin.Context, disable bool) {
	var uri OwnerURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid request", err)
		return
	}
	var body DisableRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			response.BindError(c, "invalid request body", err)
			return
		}
	}

	client := session.Client(c)
	if client == nil {
		response.Error(c, errNoClient)
		return
	}

	req := verdict.AccountRequest{
		TargetID:  uri.OwnerID,
		Disable:   disable,
		Reason:    body.Reason,
		SessionID: sessionID(c),
	}
	if err := h.service.SetAccountState(c.Request.Context(), client, req); err != nil {
		response.Error(c, err)
		return
	}

	msg := "account enabled"
	if disable {
		msg = "account disabled"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func sessionID(c *gin.Context) string {
	if s := session.FromContext(c); s != nil {
		return s.ID
	}
	return ""
}
