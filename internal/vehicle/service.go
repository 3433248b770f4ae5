package vehicle

import (
	"context"
	"net/url"
	"time"

	"github.com/cargorental/admin-dashboard/internal/backend"
	"github.com/cargorental/admin-dashboard/internal/listing"
	"github.com/cargorental/admin-dashboard/internal/querycache"
	"github.com/cargorental/admin-dashboard/internal/verdict"
)

// CollectionKey is the cache key of the vehicles list.
const CollectionKey = "vehicles"

// DetailKey is the cache key of one vehicle.
func DetailKey(id string) string {
	return querycache.Key("vehicle", id)
}

// StatusAliases maps list categories to car statuses.
var StatusAliases = map[string]string{
	"pending":   string(StatusPending),
	"available": string(StatusAvailable),
	"approved":  string(StatusAvailable),
	"archived":  string(StatusArchived),
	"rejected":  string(StatusRejected),
}

// ListSpec declares how the vehicles list is filtered.
var ListSpec = listing.Spec[Car]{
	PageSize:      15,
	Status:        func(c Car) string { return string(c.Status) },
	StatusAliases: StatusAliases,
	Secondary:     func(c Car) string { return c.VehicleType },
	SearchFields: []func(Car) string{
		func(c Car) string { return c.Brand },
		func(c Car) string { return c.Model },
		func(c Car) string { return c.NumberPlate },
		Car.RentalName,
	},
	DateFields: []func(Car) *time.Time{
		func(c Car) *time.Time { return c.CreatedAt.Ptr() },
	},
}

// OwnerKeyPrefix covers every owner detail, each of which lists its cars
// with their status.
const OwnerKeyPrefix = "owner"

// Target is the verdict target for car registration documents. Rejections
// need a reason.
var Target = verdict.Target{
	Name:          "vehicle",
	CollectionKey: CollectionKey,
	DetailKey:     DetailKey,
	ExtraKeys:     []string{OwnerKeyPrefix},
	VerdictPath: func(id, doc string) string {
		return "/api/admin/vehicles/" + url.PathEscape(id) + "/documents/" + url.PathEscape(doc) + "/verdict"
	},
	RequireRejectReason: true,
	ReasonField:         "reason_reason",
}

type Service interface {
	List(ctx context.Context, client backend.Getter) ([]Car, error)
	GetByID(ctx context.Context, client backend.Getter, id string) (*Car, error)
	Verdict(ctx context.Context, client verdict.Poster, req verdict.Request) error
}

type service struct {
	repo     Repository
	cache    *querycache.Cache
	workflow *verdict.Workflow
}

func NewService(repo Repository, cache *querycache.Cache, workflow *verdict.Workflow) Service {
	return &service{repo: repo, cache: cache, workflow: workflow}
}

func (s *service) List(ctx context.Context, client backend.Getter) ([]Car, error) {
	cars, err := querycache.Fetch(ctx, s.cache, CollectionKey, func(ctx context.Context) ([]Car, error) {
		return s.repo.List(ctx, client)
	})
	if err != nil {
		return nil, backend.FetchFailure(err, "vehicles")
	}
	return cars, nil
}

func (s *service) GetByID(ctx context.Context, client backend.Getter, id string) (*Car, error) {
	car, err := querycache.Fetch(ctx, s.cache, DetailKey(id), func(ctx context.Context) (*Car, error) {
		return s.repo.GetByID(ctx, client, id)
	})
	if err != nil {
		return nil, backend.FetchFailure(err, "vehicle")
	}
	return car, nil
}

func (s *service) Verdict(ctx context.Context, client verdict.Poster, req verdict.Request) error {
	return s.workflow.Submit(ctx, client, Target, req)
}
