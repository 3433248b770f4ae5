package owner

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/cargorental/admin-dashboard/internal/backend"
	"github.com/cargorental/admin-dashboard/internal/dashboard"
	"github.com/cargorental/admin-dashboard/internal/listing"
	"github.com/cargorental/admin-dashboard/internal/pkg/apperror"
	"github.com/cargorental/admin-dashboard/internal/querycache"
	"github.com/cargorental/admin-dashboard/internal/vehicle"
	"github.com/cargorental/admin-dashboard/internal/verdict"
)

// CollectionKey is the cache key of the rentals list.
const CollectionKey = "owners"

// DetailKey is the cache key of one owner, cars and document included.
func DetailKey(id string) string {
	return querycache.Key("owner", id)
}

// StatusAliases maps the rentals tabs to account statuses. "pending" is an
// owner waiting for document verification.
var StatusAliases = map[string]string{
	"pending":  string(StatusWaitingVerification),
	"verified": string(StatusVerified),
	"disabled": string(StatusDisabled),
	"rejected": string(StatusRejected),
}

var ListSpec = listing.Spec[Owner]{
	PageSize:      15,
	Status:        func(o Owner) string { return string(o.Status) },
	StatusAliases: StatusAliases,
	Secondary:     func(o Owner) string { return o.Province },
	SearchFields: []func(Owner) string{
		func(o Owner) string { return o.FirstName },
		func(o Owner) string { return o.LastName },
		func(o Owner) string { return o.CarRentalName },
		func(o Owner) string { return o.Email },
		func(o Owner) string { return o.PhoneNo },
		func(o Owner) string { return o.City },
	},
	DateFields: []func(Owner) *time.Time{
		func(o Owner) *time.Time { return o.CreatedAt.Ptr() },
	},
}

// CarsSpec declares the car list on the owner detail view.
var CarsSpec = listing.Spec[vehicle.Car]{
	PageSize:      15,
	Status:        func(c vehicle.Car) string { return string(c.Status) },
	StatusAliases: vehicle.StatusAliases,
	Secondary:     func(c vehicle.Car) string { return c.VehicleType },
	SearchFields: []func(vehicle.Car) string{
		func(c vehicle.Car) string { return c.Brand },
		func(c vehicle.Car) string { return c.Model },
	},
}

// Target is the verdict target for owner documents. A verdict changes the
// owner's status, which the dashboard counts too.
var Target = verdict.Target{
	Name:          "owner",
	CollectionKey: CollectionKey,
	DetailKey:     DetailKey,
	ExtraKeys:     []string{dashboard.CacheKey},
	VerdictPath: func(id, doc string) string {
		return "/api/admin/owners/" + url.PathEscape(id) + "/documents/" + url.PathEscape(doc) + "/verdict"
	},
	AccountPath: func(id string) string {
		return "/api/admin/owners/" + url.PathEscape(id) + "/disable"
	},
}

var (
	ErrAlreadyEnabled  = &apperror.AppError{Code: http.StatusConflict, Kind: apperror.KindValidation, Message: "account is already enabled"}
	ErrAlreadyDisabled = &apperror.AppError{Code: http.StatusConflict, Kind: apperror.KindValidation, Message: "account is already disabled"}
)

// Client reads and writes through the backend.
type Client interface {
	backend.Getter
	verdict.Poster
}

type Service interface {
	List(ctx context.Context, client backend.Getter) ([]Owner, error)
	GetByID(ctx context.Context, client backend.Getter, id string) (*Owner, error)
	Verdict(ctx context.Context, client verdict.Poster, req verdict.Request) error
	SetAccountState(ctx context.Context, client Client, req verdict.AccountRequest) error
}

type service struct {
	repo     Repository
	cache    *querycache.Cache
	workflow *verdict.Workflow
}

func NewService(repo Repository, cache *querycache.Cache, workflow *verdict.Workflow) Service {
	return &service{repo: repo, cache: cache, workflow: workflow}
}

func (s *service) List(ctx context.Context, client backend.Getter) ([]Owner, error) {
	owners, err := querycache.Fetch(ctx, s.cache, CollectionKey, func(ctx context.Context) ([]Owner, error) {
		return s.repo.List(ctx, client)
	})
	if err != nil {
		return nil, backend.FetchFailure(err, "rentals")
	}
	return owners, nil
}

func (s *service) GetByID(ctx context.Context, client backend.Getter, id string) (*Owner, error) {
	o, err := querycache.Fetch(ctx, s.cache, DetailKey(id), func(ctx context.Context) (*Owner, error) {
		return s.repo.GetByID(ctx, client, id)
	})
	if err != nil {
		return nil, backend.FetchFailure(err, "owner")
	}
	return o, nil
}

func (s *service) Verdict(ctx context.Context, client verdict.Poster, req verdict.Request) error {
	return s.workflow.Submit(ctx, client, Target, req)
}

// SetAccountState disables or enables an owner. The backend endpoint toggles,
// so the request is refused when the owner is already in the wanted state.
// The state is read fresh: a stale owner would let a second disable through
// and the toggle would enable the account again.
func (s *service) SetAccountState(ctx context.Context, client Client, req verdict.AccountRequest) error {
	o, err := querycache.FetchFresh(ctx, s.cache, DetailKey(req.TargetID), func(ctx context.Context) (*Owner, error) {
		return s.repo.GetByID(ctx, client, req.TargetID)
	})
	if err != nil {
		return backend.FetchFailure(err, "owner")
	}
	switch {
	case req.Disable && o.Disabled():
		return ErrAlreadyDisabled
	case !req.Disable && !o.Disabled():
		return ErrAlreadyEnabled
	}
	return s.workflow.SetAccountState(ctx, client, Target, req)
}
