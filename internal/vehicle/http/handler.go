package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cargorental/admin-dashboard/internal/export"
	"github.com/cargorental/admin-dashboard/internal/listing"
	"github.com/cargorental/admin-dashboard/internal/pkg/apperror"
	"github.com/cargorental/admin-dashboard/internal/pkg/format"
	"github.com/cargorental/admin-dashboard/internal/pkg/response"
	"github.com/cargorental/admin-dashboard/internal/session"
	"github.com/cargorental/admin-dashboard/internal/vehicle"
	"github.com/cargorental/admin-dashboard/internal/verdict"
)

var errNoClient = apperror.New(http.StatusUnauthorized, "login required")

type Handler struct {
	service vehicle.Service
	view    format.View
}

func NewHandler(service vehicle.Service, view format.View) *Handler {
	return &Handler{service: service, view: view}
}

func (h *Handler) filtered(c *gin.Context) ([]vehicle.Car, listing.State, bool) {
	var req ListVehiclesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, "invalid query parameters", err)
		return nil, listing.State{}, false
	}

	client := session.Client(c)
	if client == nil {
		response.Error(c, errNoClient)
		return nil, listing.State{}, false
	}

	cars, err := h.service.List(c.Request.Context(), client)
	if err != nil {
		response.Error(c, err)
		return nil, listing.State{}, false
	}
	return cars, req.State(req.VehicleType, h.view.Loc()), true
}

// List returns one page of the filtered vehicles list.
func (h *Handler) List(c *gin.Context) {
	cars, state, ok := h.filtered(c)
	if !ok {
		return
	}

	page := listing.VisiblePage(cars, vehicle.ListSpec, state.Filter, state.Page, h.view.Loc())
	options := listing.Options(cars, vehicle.ListSpec.Secondary)

	c.JSON(http.StatusOK, response.NewListResponse(page, state.Filter, options, func(car vehicle.Car) VehicleListItem {
		return NewVehicleListItem(h.view, car)
	}))
}

// Export downloads the filtered vehicles list, all pages, as XLSX.
func (h *Handler) Export(c *gin.Context) {
	cars, state, ok := h.filtered(c)
	if !ok {
		return
	}

	rows := listing.Filtered(cars, vehicle.ListSpec, state.Filter, h.view.Loc())
	table := export.Table{
		Sheet:   "Vehicles",
		Headers: []string{"ID", "Vehicle", "Year", "Plate No.", "Type", "Rental", "Status", "Created"},
		Widths:  map[int]float64{1: 28, 5: 28, 7: 24},
	}
	for _, car := range rows {
		var year any = ""
		if car.Year != nil {
			year = *car.Year
		}
		table.Rows = append(table.Rows, []any{
			car.ID, car.Name(), year, car.NumberPlate, car.VehicleType, car.RentalName(),
			car.Status.Label(), h.view.ShortDateTime(car.CreatedAt.Time),
		})
	}

	if err := export.Respond(c, "vehicles", table); err != nil {
		response.Error(c, err)
	}
}

// Get returns the vehicle detail view.
func (h *Handler) Get(c *gin.Context) {
	var uri VehicleURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid request", err)
		return
	}

	client := session.Client(c)
	if client == nil {
		response.Error(c, errNoClient)
		return
	}

	car, err := h.service.GetByID(c.Request.Context(), client, uri.VehicleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewVehicleDetailResponse(h.view, car))
}

// Verdict approves or rejects the vehicle's submitted document. The response
// is sent once the backend has answered.
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
		TargetID:   uri.VehicleID,
		DocumentID: uri.DocumentID,
		Verdict:    strings.ToUpper(strings.TrimSpace(body.Verdict)),
		Reason:     body.Reason,
	}
	if s := session.FromContext(c); s != nil {
		req.SessionID = s.ID
	}

	if err := h.service.Verdict(c.Request.Context(), client, req); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verdict submitted", "verdict": req.Verdict})
}
