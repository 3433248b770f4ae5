package booking

import (
	"context"
	"time"

	"github.com/cargorental/admin-dashboard/internal/backend"
	"github.com/cargorental/admin-dashboard/internal/listing"
	"github.com/cargorental/admin-dashboard/internal/querycache"
	"github.com/cargorental/admin-dashboard/internal/vehicle"
)

// CollectionKey is the cache key of the bookings list.
const CollectionKey = "bookings"

var StatusAliases = map[string]string{
	"pending":   string(StatusPending),
	"to_pay":    string(StatusToPay),
	"rented":    string(StatusRented),
	"completed": string(StatusCompleted),
	"rejected":  string(StatusRejected),
}

// ListSpec declares how the bookings list is filtered. The secondary filter
// is the rental business.
var ListSpec = listing.Spec[Booking]{
	PageSize:      15,
	Status:        func(b Booking) string { return string(b.Status) },
	StatusAliases: StatusAliases,
	Secondary:     Booking.RentalName,
	SearchFields: []func(Booking) string{
		func(b Booking) string { return b.ReferenceNumber },
		func(b Booking) string { return b.carField(func(c vehicle.Car) string { return c.Brand }) },
		func(b Booking) string { return b.carField(func(c vehicle.Car) string { return c.Model }) },
		Booking.RentalName,
		func(b Booking) string {
			if b.User == nil {
				return ""
			}
			return b.User.FirstName
		},
		func(b Booking) string {
			if b.User == nil {
				return ""
			}
			return b.User.LastName
		},
		func(b Booking) string { return b.PickupLocation },
		func(b Booking) string { return b.ReturnLocation },
	},
	DateFields: []func(Booking) *time.Time{
		func(b Booking) *time.Time { return b.CreatedAt.Ptr() },
		func(b Booking) *time.Time { return b.PickupDate.Ptr() },
		func(b Booking) *time.Time { return b.ReturnDate.Ptr() },
	},
}

type Service interface {
	List(ctx context.Context, client backend.Getter) ([]Booking, error)
}

type service struct {
	repo  Repository
	cache *querycache.Cache
}

func NewService(repo Repository, cache *querycache.Cache) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) List(ctx context.Context, client backend.Getter) ([]Booking, error) {
	bookings, err := querycache.Fetch(ctx, s.cache, CollectionKey, func(ctx context.Context) ([]Booking, error) {
		return s.repo.List(ctx, client)
	})
	if err != nil {
		return nil, backend.FetchFailure(err, "bookings")
	}
	return bookings, nil
}
