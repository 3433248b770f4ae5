package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cargorental/admin-dashboard/internal/booking"
	"github.com/cargorental/admin-dashboard/internal/export"
	"github.com/cargorental/admin-dashboard/internal/listing"
	"github.com/cargorental/admin-dashboard/internal/pkg/apperror"
	"github.com/cargorental/admin-dashboard/internal/pkg/format"
	"github.com/cargorental/admin-dashboard/internal/pkg/response"
	"github.com/cargorental/admin-dashboard/internal/session"
)

var errNoClient = apperror.New(http.StatusUnauthorized, "login required")

type Handler struct {
	service booking.Service
	view    format.View
}

func NewHandler(service booking.Service, view format.View) *Handler {
	return &Handler{service: service, view: view}
}

func (h *Handler) filtered(c *gin.Context) ([]booking.Booking, listing.State, bool) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, "invalid query parameters", err)
		return nil, listing.State{}, false
	}

	client := session.Client(c)
	if client == nil {
		response.Error(c, errNoClient)
		return nil, listing.State{}, false
	}

	bookings, err := h.service.List(c.Request.Context(), client)
	if err != nil {
		response.Error(c, err)
		return nil, listing.State{}, false
	}
	return bookings, req.State(req.Rental, h.view.Loc()), true
}

// List returns one page of the filtered bookings list.
func (h *Handler) List(c *gin.Context) {
	bookings, state, ok := h.filtered(c)
	if !ok {
		return
	}

	page := listing.VisiblePage(bookings, booking.ListSpec, state.Filter, state.Page, h.view.Loc())
	options := listing.Options(bookings, booking.ListSpec.Secondary)

	c.JSON(http.StatusOK, response.NewListResponse(page, state.Filter, options, func(b booking.Booking) BookingResponse {
		return NewBookingResponse(h.view, b)
	}))
}

// Export downloads the filtered bookings list as XLSX.
func (h *Handler) Export(c *gin.Context) {
	bookings, state, ok := h.filtered(c)
	if !ok {
		return
	}

	table := export.Table{
		Sheet: "Bookings",
		Headers: []string{
			"Reference No.", "Vehicle", "Rental", "Renter", "Pick-up", "Return",
			"Pick-up Location", "Return Location", "Total Price", "Status", "Booked At",
		},
		Widths: map[int]float64{0: 20, 1: 28, 2: 28, 3: 24, 4: 22, 5: 22, 6: 30, 7: 30, 10: 22},
	}
	for _, b := range listing.Filtered(bookings, booking.ListSpec, state.Filter, h.view.Loc()) {
		var price any = ""
		if b.TotalPrice != nil {
			price = *b.TotalPrice
		}
		table.Rows = append(table.Rows, []any{
			b.ReferenceNumber, b.CarName(), b.RentalName(), b.RenterName(),
			h.view.ShortDateTime(b.PickupDate.Time), h.view.ShortDateTime(b.ReturnDate.Time),
			b.PickupLocation, b.ReturnLocation, price, b.Status.Label(),
			h.view.ShortDateTime(b.CreatedAt.Time),
		})
	}

	if err := export.Respond(c, "bookings", table); err != nil {
		response.Error(c, err)
	}
}
