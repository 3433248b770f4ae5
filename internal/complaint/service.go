package complaint

import (
	"context"
	"time"

	"github.com/cargorental/admin-dashboard/internal/backend"
	"github.com/cargorental/admin-dashboard/internal/listing"
	"github.com/cargorental/admin-dashboard/internal/querycache"
)

const CollectionKey = "complaints"

var StatusAliases = map[string]string{
	"pending":   string(StatusPending),
	"resolved":  string(StatusResolved),
	"dismissed": string(StatusDismissed),
}

var ListSpec = listing.Spec[Complaint]{
	PageSize:      15,
	Status:        func(c Complaint) string { return string(c.Status) },
	StatusAliases: StatusAliases,
	Secondary:     func(c Complaint) string { return c.Type },
	SearchFields: []func(Complaint) string{
		func(c Complaint) string { return c.ReferenceNumber },
		func(c Complaint) string { return c.Subject },
		func(c Complaint) string { return c.Description },
		func(c Complaint) string {
			if c.User == nil {
				return ""
			}
			return c.User.FirstName
		},
		func(c Complaint) string {
			if c.User == nil {
				return ""
			}
			return c.User.LastName
		},
	},
	DateFields: []func(Complaint) *time.Time{
		func(c Complaint) *time.Time { return c.CreatedAt.Ptr() },
	},
}

type Service interface {
	List(ctx context.Context, client backend.Getter) ([]Complaint, error)
}

type service struct {
	repo  Repository
	cache *querycache.Cache
}

func NewService(repo Repository, cache *querycache.Cache) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) List(ctx context.Context, client backend.Getter) ([]Complaint, error) {
	complaints, err := querycache.Fetch(ctx, s.cache, CollectionKey, func(ctx context.Context) ([]Complaint, error) {
		return s.repo.List(ctx, client)
	})
	if err != nil {
		return nil, backend.FetchFailure(err, "complaints")
	}
	return complaints, nil
}
