package http

import (
	"github.com/cargorental/admin-dashboard/internal/booking"
	"github.com/cargorental/admin-dashboard/internal/pkg/format"
	"github.com/cargorental/admin-dashboard/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for the bookings list.
type ListBookingsRequest struct {
	request.ListParams
	Rental string `form:"rental"`
}

type BookingResponse struct {
	ID              int64  `json:"id"`
	ReferenceNumber string `json:"reference_number"`
	CarName         string `json:"car_name"`
	CarYear         *int   `json:"car_year,omitempty"`
	CarImageURL     string `json:"car_image_url,omitempty"`
	RentalName      string `json:"rental_name"`
	RenterName      string `json:"renter_name"`
	PickupLocation  string `json:"pickup_location"`
	ReturnLocation  string `json:"return_location"`
	PickupDate      string `json:"pickup_date"`
	ReturnDate      string `json:"return_date"`
	TotalPrice      string `json:"total_price"`
	Status          string `json:"status"`
	StatusLabel     string `json:"status_label"`
	CreatedAt       string `json:"created_at"`
}

func NewBookingResponse(v format.View, b booking.Booking) BookingResponse {
	resp := BookingResponse{
		ID:              b.ID,
		ReferenceNumber: b.ReferenceNumber,
		CarName:         b.CarName(),
		RentalName:      b.RentalName(),
		RenterName:      b.RenterName(),
		PickupLocation:  b.PickupLocation,
		ReturnLocation:  b.ReturnLocation,
		PickupDate:      v.ShortDateTime(b.PickupDate.Time),
		ReturnDate:      v.ShortDateTime(b.ReturnDate.Time),
		TotalPrice:      format.PricePtr(b.TotalPrice),
		Status:          string(b.Status),
		StatusLabel:     b.Status.Label(),
		CreatedAt:       v.ShortDateTime(b.CreatedAt.Time),
	}
	if b.Car != nil {
		resp.CarYear = b.Car.Year
		if img, ok := b.Car.Cover(); ok {
			resp.CarImageURL = v.Image(img.FileFolder, img.ImageName)
		}
	}
	return resp
}
