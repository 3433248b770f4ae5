package booking

import (
	"context"

	"github.com/cargorental/admin-dashboard/internal/backend"
)

// Repository reads bookings from the backend.
type Repository interface {
	List(ctx context.Context, client backend.Getter) ([]Booking, error)
}

type apiRepository struct{}

// NewAPIRepository creates a Repository backed by the admin REST API.
func NewAPIRepository() Repository {
	return apiRepository{}
}

func (apiRepository) List(ctx context.Context, client backend.Getter) ([]Booking, error) {
	var bookings []Booking
	if err := client.Get(ctx, "/api/admin/bookings", &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
