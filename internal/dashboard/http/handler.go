package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookingHttp "github.com/cargorental/admin-dashboard/internal/booking/http"
	"github.com/cargorental/admin-dashboard/internal/dashboard"
	"github.com/cargorental/admin-dashboard/internal/pkg/apperror"
	"github.com/cargorental/admin-dashboard/internal/pkg/format"
	"github.com/cargorental/admin-dashboard/internal/pkg/response"
	"github.com/cargorental/admin-dashboard/internal/session"
)

type DashboardResponse struct {
	Counts         dashboard.Counts              `json:"counts"`
	RecentBookings []bookingHttp.BookingResponse `json:"recent_bookings"`
}

type Handler struct {
	service dashboard.Service
	view    format.View
}

func NewHandler(service dashboard.Service, view format.View) *Handler {
	return &Handler{service: service, view: view}
}

// Get returns the headline counts and the most recent bookings.
func (h *Handler) Get(c *gin.Context) {
	client := session.Client(c)
	if client == nil {
		response.Error(c, apperror.New(http.StatusUnauthorized, "login required"))
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), client)
	if err != nil {
		response.Error(c, err)
		return
	}

	recent := summary.Recent()
	resp := DashboardResponse{
		Counts:         summary.Counts(),
		RecentBookings: make([]bookingHttp.BookingResponse, 0, len(recent)),
	}
	for _, b := range recent {
		resp.RecentBookings = append(resp.RecentBookings, bookingHttp.NewBookingResponse(h.view, b))
	}
	c.JSON(http.StatusOK, resp)
}
