package booking

import (
	"github.com/cargorental/admin-dashboard/internal/backend"
	"github.com/cargorental/admin-dashboard/internal/pkg/format"
	"github.com/cargorental/admin-dashboard/internal/vehicle"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusToPay     Status = "TO_PAY"
	StatusRented    Status = "RENTED"
	StatusCompleted Status = "COMPLETED"
	StatusRejected  Status = "REJECTED"
)

// Label is the status as the dashboard shows it.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusToPay:
		return "To Pay"
	case StatusRented:
		return "Rented"
	case StatusCompleted:
		return "Completed"
	case StatusRejected:
		return "Declined"
	default:
		return "Unknown"
	}
}

// Renter is the user who placed a booking.
type Renter struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	PhoneNo   string `json:"phone_no"`
}

// Booking is a rental transaction as the backend returns it.
type Booking struct {
	ID              int64        `json:"id"`
	ReferenceNumber string       `json:"reference_number"`
	Status          Status       `json:"status"`
	PickupDate      backend.Time `json:"pickup_date"`
	ReturnDate      backend.Time `json:"return_date"`
	PickupLocation  string       `json:"pickup_location"`
	ReturnLocation  string       `json:"return_location"`
	TotalPrice      *float64     `json:"total_price"`
	CreatedAt       backend.Time `json:"created_at"`
	Car             *vehicle.Car `json:"car"`
	User            *Renter      `json:"user"`
}

func (b Booking) carField(fn func(vehicle.Car) string) string {
	if b.Car == nil {
		return ""
	}
	return fn(*b.Car)
}

// CarName is "<brand> <model>", or "" when the car is missing.
func (b Booking) CarName() string { return b.carField(vehicle.Car.Name) }

// RentalName is the name of the business renting the car out.
func (b Booking) RentalName() string { return b.carField(vehicle.Car.RentalName) }

// RenterName is the renter's full name.
func (b Booking) RenterName() string {
	if b.User == nil {
		return ""
	}
	return format.FullName(b.User.FirstName, b.User.LastName)
}
